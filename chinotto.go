// Package chinotto bundles the assertion registry with the
// filesystem assertions.
//
//	r := assertion.NewRegistry()
//	if err := chinotto.Register(r); err != nil {
//		return err
//	}
//	err := r.Expect("/etc/hosts").To().Be().A().Prop("file").Err()
package chinotto

import (
	"digital.vasic.chinotto/pkg/assertion"
	"digital.vasic.chinotto/pkg/filesystem"
	"digital.vasic.chinotto/pkg/logging"
	"digital.vasic.chinotto/pkg/plugin"
)

// Version of the module and its command line.
const Version = "0.3.0"

// Register loads the filesystem plugin into r.
func Register(r assertion.Registrar) error {
	return RegisterWithLogger(r, nil)
}

// RegisterWithLogger is Register with plugin loading traced to
// logger.
func RegisterWithLogger(r assertion.Registrar, logger logging.Logger) error {
	loader := plugin.NewLoader(plugin.NewRegistry(), r, logger)
	return loader.LoadAndInit(filesystem.Plugin())
}

// NewRegistry returns a registry holding the built-in and
// filesystem assertions.
func NewRegistry(logger logging.Logger) (*assertion.Registry, error) {
	r := assertion.NewRegistry(assertion.WithLogger(logger))
	if err := RegisterWithLogger(r, logger); err != nil {
		return nil, err
	}
	return r, nil
}
