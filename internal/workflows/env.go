package workflows

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/tagkeys/internal/audit"
	"github.com/PolarWolf314/tagkeys/internal/configs"
	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
	"github.com/PolarWolf314/tagkeys/internal/keystore"
	logger "github.com/PolarWolf314/tagkeys/internal/logging"
	"github.com/PolarWolf314/tagkeys/internal/secrets"
	"github.com/PolarWolf314/tagkeys/internal/unlock"
)

// Env selects the configuration a workflow runs under.
type Env struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// Logger receives progress and per-fragment warnings.
	Logger logger.Logger
}

// session holds what a single workflow run needs.
type session struct {
	config *configs.Config
	store  keystore.Store
	log    logger.Logger
}

func openSession(env Env) (*session, error) {
	configPath := env.ConfigPath
	if configPath == "" {
		configPath = configs.UserSettings.ConfigFile()
	}

	config, err := configs.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	for _, key := range config.Unknown {
		env.Logger.Warnf("Ignoring unknown config key %q in %s", key, configPath)
	}

	storeConfig := config.ResolvedStore(configs.UserSettings)
	env.Logger.Debugf("Opening %s key store at %q", storeConfig.Backend, storeConfig.Path)

	store, err := keystore.Open(storeConfig)
	if err != nil {
		return nil, err
	}

	return &session{config: config, store: store, log: env.Logger}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Warnf("Failed to close key store: %v", err)
	}
}

func (s *session) tracker(renderer unlock.Renderer) (*unlock.Tracker, error) {
	cipher, err := s.config.ParsedCipher()
	if err != nil {
		return nil, err
	}

	return unlock.New(s.store, renderer,
		unlock.WithLogger(s.log),
		unlock.WithCipher(cipher),
		unlock.WithSentinel(s.config.Sentinel),
		unlock.WithConcurrency(s.config.Concurrency),
	), nil
}

func (s *session) audit(entry audit.Entry) {
	if s.config.Audit.Enabled {
		audit.Log(entry)
	}
}

// validateTag rejects tags a document could never declare.
func validateTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("%w: tag is empty", kerrors.ErrInvalidTag)
	}
	if strings.Contains(tag, secrets.Separator) {
		return fmt.Errorf("%w: %q contains %q", kerrors.ErrInvalidTag, tag, secrets.Separator)
	}
	return nil
}
