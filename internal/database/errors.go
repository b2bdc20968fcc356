package database

import (
	"errors"
	"fmt"
)

var (
	ErrClosed   = errors.New("database is closed")
	ErrNotFound = errors.New("not found")
)

type Entity string

const (
	EntitySession Entity = "session"
	EntityPlan    Entity = "plan"
	EntitySetting Entity = "setting"
)

type OpError struct {
	Op       string
	Resource Entity
	ID       int64
	Err      error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.ID > 0 {
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapErr(entity Entity, op string, id int64, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Resource: entity, ID: id, Err: err}
}
