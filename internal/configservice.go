package internal

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/net/context"

	"github.com/teknologkoren/strequekiosk/internal/ctxhelper"
	"github.com/teknologkoren/strequekiosk/internal/log"
	"github.com/teknologkoren/strequekiosk/internal/models"
)

// ConfigService gives access to the kiosk's configuration
type ConfigService interface {
	// Load loads the application config from its default file location
	Load(ctx context.Context) error
	// LoadFromFile loads the configuration from the given JSON file
	LoadFromFile(ctx context.Context, filename string) error
	// LoadOrCreate loads the default file, or writes the default configuration to it if there is no such file yet
	LoadOrCreate(ctx context.Context) error
	// Write writes the current application configuration to the default file name
	Write(ctx context.Context) error
	// WriteToFile writes the current application configuration to a JSON file
	WriteToFile(ctx context.Context, filename string) error
	// GetConfig retuns the current application configuration
	GetConfig(ctx context.Context) models.AppConfig
	// FallbackCSRFToken returns the CSRF token to use when the browser did not send one
	FallbackCSRFToken() string
}

// -- ConfigService implementation -------------------------------------------------------------------------------------

type configService struct {
	sync.RWMutex
	configFilename string
	config         *models.AppConfig
}

// NewConfigService creates a new configuration service instance with the given default file name
func NewConfigService(configFilename string) ConfigService {
	return &configService{configFilename: configFilename}
}

// Load loads the application config from its default file location
func (s *configService) Load(ctx context.Context) error {
	return s.LoadFromFile(ctx, s.configFilename)
}

// LoadOrCreate loads the default file, or writes the default configuration to it if there is no such file yet
func (s *configService) LoadOrCreate(ctx context.Context) error {
	err := s.Load(ctx)
	if err == nil || !os.IsNotExist(errors.Cause(err)) {
		return err
	}
	conf, err := models.GetDefaultConfig()
	if err != nil {
		return errors.Wrap(err, "LoadOrCreate: Failed to create default config")
	}
	s.Lock()
	s.config = conf
	s.Unlock()
	ctxhelper.Logger(ctx).WithField(log.FldFile, s.configFilename).Info("No configuration file - writing defaults")
	return s.Write(ctx)
}

// LoadFromFile loads the configuration from the given JSON file. Values missing in the file keep their defaults.
func (s *configService) LoadFromFile(ctx context.Context, filename string) error {
	logger := ctxhelper.Logger(ctx)
	logger.WithField(log.FldFile, filename).Info("Loading configuration file")
	conf, err := models.GetDefaultConfig()
	if err != nil {
		return errors.Wrap(err, "LoadFromFile: Failed to create default config")
	}
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "LoadFromFile: cannot load configuration file")
	}
	defer f.Close()
	if err = json.NewDecoder(f).Decode(conf); err != nil {
		return errors.Wrap(err, "LoadFromFile: Failed to decode configuration file")
	}
	s.Lock()
	defer s.Unlock()
	s.config = conf
	return nil
}

// Write writes the current application configuration to the default file name
func (s *configService) Write(ctx context.Context) error {
	return s.WriteToFile(ctx, s.configFilename)
}

// WriteToFile writes the current application configuration to a JSON file
func (s *configService) WriteToFile(ctx context.Context, filename string) error {
	logger := ctxhelper.Logger(ctx)
	logger.WithField(log.FldFile, filename).Info("Writing configuration file")
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "WriteToFile: Cannot open configuration file '%s' to write to", filename)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	conf := s.GetConfig(ctx)
	if err := enc.Encode(&conf); err != nil {
		return errors.Wrap(err, "WriteToFile: Failed to serialize configuration data")
	}
	return nil
}

// GetConfig retuns the current application configuration
func (s *configService) GetConfig(ctx context.Context) models.AppConfig {
	s.RLock()
	defer s.RUnlock()
	var ret models.AppConfig
	if s.config != nil {
		ret = *s.config
	} else {
		if tmp, err := models.GetDefaultConfig(); err == nil {
			ret = *tmp
		}
	}
	return ret
}

// FallbackCSRFToken returns the CSRF token to use when the browser did not send one
func (s *configService) FallbackCSRFToken() string {
	s.RLock()
	defer s.RUnlock()
	if s.config == nil {
		return ""
	}
	return s.config.Upstream.CSRFToken
}
