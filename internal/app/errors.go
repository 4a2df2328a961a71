package service

import "errors"

// ErrInvalidAssessment wraps every validation failure of caller input.
var ErrInvalidAssessment = errors.New("invalid assessment")
