package service

import (
	"errors"

	"github.com/ringsizer/storefront/internal/pkg/observable"
	"github.com/ringsizer/storefront/internal/repository"
)

var (
	ErrUnauthorized = repository.ErrUnauthorized
	ErrNotFound     = repository.ErrNotFound
)

// Status is the loading flag and last error message of a state holder.
type Status struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Describe turns an error into the single line shown to the user. Remote failures carry
// the message sent by the remote API.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *repository.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

type statusHolder struct {
	Status *observable.Store[Status]
}

func newStatusHolder() statusHolder {
	return statusHolder{Status: observable.New(Status{})}
}

func (h statusHolder) begin() {
	h.Status.Set(Status{Loading: true})
}

func (h statusHolder) done() {
	h.Status.Set(Status{})
}

func (h statusHolder) fail(err error) {
	h.Status.Set(Status{Error: Describe(err)})
}
