// Package demo is a small storybook used by the storyreg command: a few
// kinds registered the way a component library would register them,
// including reload hooks and a story that announces a subscription.
package demo

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/storyreg/pkg/channel"
	"github.com/arthur-debert/storyreg/pkg/clientapi"
	"github.com/arthur-debert/storyreg/pkg/errors"
	"github.com/arthur-debert/storyreg/pkg/logging"
	"github.com/arthur-debert/storyreg/pkg/module"
	"github.com/arthur-debert/storyreg/pkg/registry"
)

// RegisterFunc declares one kind on api.
type RegisterFunc func(api *clientapi.ClientAPI, m *module.Ref, env *Env) error

// Module is one registration module. Ref survives reloads so its Hot
// handle can dispose what the previous registration added.
type Module struct {
	Kind     string
	Ref      *module.Ref
	Register RegisterFunc
}

// Env is what registration modules may use besides the api.
type Env struct {
	// Channel is where stories announce subscriptions; may be nil
	Channel channel.Channel

	// Knobs is the subscription announced by the Knobs stories. It is
	// created once so renders keep the same identity.
	Knobs *Knobs
}

// Storybook owns the demo modules and registers them on an api.
type Storybook struct {
	api     *clientapi.ClientAPI
	env     *Env
	modules registry.Registry[*Module]
	logger  zerolog.Logger
}

// New creates the demo storybook. ch may be nil.
func New(api *clientapi.ClientAPI, ch channel.Channel) *Storybook {
	s := &Storybook{
		api:     api,
		env:     &Env{Channel: ch, Knobs: NewKnobs(ch)},
		modules: registry.New[*Module](),
		logger:  logging.GetLogger("demo"),
	}
	registry.MustRegister(s.modules, "Button", &Module{Kind: "Button", Ref: module.New("components/button.stories"), Register: registerButton})
	registry.MustRegister(s.modules, "Badge", &Module{Kind: "Badge", Ref: module.New("components/badge.stories"), Register: registerBadge})
	registry.MustRegister(s.modules, "Knobs", &Module{Kind: "Knobs", Ref: module.New("addons/knobs.stories"), Register: registerKnobs})
	return s
}

// Kinds lists the demo kinds in registration order.
func (s *Storybook) Kinds() []string {
	return s.modules.List()
}

// Env returns the environment passed to registration modules.
func (s *Storybook) Env() *Env {
	return s.env
}

// Register resets the api globals, installs the demo decorators,
// parameters and addons, then runs the modules for kinds (every module
// when kinds is empty).
func (s *Storybook) Register(kinds []string) error {
	defer logging.LogOperationStart(s.logger, "register")()

	selected := kinds
	if len(selected) == 0 {
		selected = s.modules.List()
	}
	for _, kind := range selected {
		if !s.modules.Has(kind) {
			return errors.Newf(errors.ErrNotFound, "unknown demo kind %q", kind).
				WithDetail("available", s.modules.List())
		}
	}

	s.api.Reset()
	s.api.AddDecorator(withFrame)
	s.api.AddParameters(globalParameters())
	s.api.SetAddon(addons())

	for _, kind := range selected {
		if err := s.run(kind); err != nil {
			return err
		}
	}
	s.logger.Info().Strs("kinds", selected).Msg("Demo storybook registered")
	return nil
}

// Reload disposes kind the way a module reload would, then runs its
// registration module again. It returns the number of dispose callbacks
// that ran.
func (s *Storybook) Reload(kind string) (int, error) {
	m, err := s.modules.Get(kind)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrNotFound, "unknown demo kind %q", kind)
	}
	disposed := m.Ref.Hot.Reload()
	logger := logging.WithFields(map[string]interface{}{
		"component": "demo",
		"kind":      kind,
		"module":    m.Ref.ID,
	})
	logger.Debug().Int("disposed", disposed).Msg("Module reloaded")
	return disposed, s.run(kind)
}

func (s *Storybook) run(kind string) error {
	m := registry.MustGet(s.modules, kind)
	if err := m.Register(s.api, m.Ref, s.env); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "registering %s failed", kind).
			WithDetail("module", m.Ref.ID)
	}
	return nil
}
