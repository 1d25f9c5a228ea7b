package config

import (
	"errors"
	"fmt"
)

var ErrMissingMongoURI = errors.New("MONGO_URI environment variable not set. Please create a .env file and set it")

type InvalidValueError struct {
	Key   string
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s", e.Value, e.Key)
}
