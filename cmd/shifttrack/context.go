package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"shifttrack/internal/api"
	"shifttrack/internal/config"
	"shifttrack/internal/doctext"
	"shifttrack/internal/logging"
	"shifttrack/internal/notifications"
	"shifttrack/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if c.config != nil {
			return
		}
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// services bundles everything a command needs against an open store.
type services struct {
	cfg      *config.Config
	store    *store.Store
	shifts   *api.ShiftService
	rates    *api.RateService
	timeline *api.TimelineService
	audit    *api.AuditService
	notifier notifications.Service
}

// withServices opens the store for the duration of one command. The CLI logs
// nothing itself; notification failures surface through the services.
func (c *commandContext) withServices(fn func(*services) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	logger := logging.NewNop()
	notifier := notifications.NewService(cfg)
	svcs := &services{
		cfg:      cfg,
		store:    st,
		shifts:   api.NewShiftService(st, cfg, notifier, logger),
		rates:    api.NewRateService(st),
		timeline: api.NewTimelineService(st, cfg),
		notifier: notifier,
	}
	svcs.audit = api.NewAuditService(st, doctext.New(cfg, logger), notifier, logger)
	return fn(svcs)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
