package viewsync

import (
	"errors"

	"github.com/okian/staffboard/internal/domain/model"
)

// Sentinel kinds for view-sync errors. Backend failures keep the kinds of
// the backend package.
var (
	ErrEmptySkill = model.ErrEmptySkill
	ErrNoProject  = errors.New("page location carries no project id")
)
