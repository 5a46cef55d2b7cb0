package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/storyreg/pkg/catalog"
	"github.com/arthur-debert/storyreg/pkg/channel"
	"github.com/arthur-debert/storyreg/pkg/clientapi"
	"github.com/arthur-debert/storyreg/pkg/config"
	"github.com/arthur-debert/storyreg/pkg/demo"
	"github.com/arthur-debert/storyreg/pkg/export"
	"github.com/arthur-debert/storyreg/pkg/logging"
	"github.com/arthur-debert/storyreg/pkg/metrics"
	"github.com/arthur-debert/storyreg/pkg/ui"
)

// session is the engine assembled for one command invocation.
type session struct {
	cfg      *config.Config
	store    *catalog.Store
	bus      *channel.Bus
	api      *clientapi.ClientAPI
	book     *demo.Storybook
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func newSession(cfg *config.Config) (*session, error) {
	logger := logging.GetLogger("cmd")
	s := &session{
		cfg:      cfg,
		bus:      channel.NewBus(logging.GetLogger("channel")),
		registry: prometheus.NewRegistry(),
		logger:   logger,
	}

	if cfg.Metrics.Enabled {
		m, err := metrics.New(s.registry)
		if err != nil {
			return nil, err
		}
		s.metrics = m
	}

	storeOpts := []catalog.Option{catalog.WithLogger(logging.GetLogger("catalog"))}
	if cfg.Catalog.EmitEvents {
		storeOpts = append(storeOpts, catalog.WithChannel(s.bus))
	}
	s.store = catalog.NewStore(storeOpts...)

	holder := channel.NewHolder(nil)
	if cfg.Catalog.TrackSubscriptions {
		holder.SetChannel(s.bus)
	}

	s.api = clientapi.New(
		clientapi.WithCatalog(s.store),
		clientapi.WithChannel(holder),
		clientapi.WithMetrics(s.metrics),
		clientapi.WithLogger(logging.GetLogger("clientapi")),
	)
	s.book = demo.New(s.api, s.bus)

	s.bus.On(channel.EventStoryAdded, channel.NewListener(func(args ...any) {
		logger.Trace().Interface("story", args).Msg("Story added")
	}))

	if err := s.book.Register(cfg.Demo.Kinds); err != nil {
		return nil, err
	}
	return s, nil
}

// listing exports the current storybook.
func (s *session) listing(render bool) export.Listing {
	listing := export.FromStorybook(s.api.GetStorybook(), render)
	listing.Revision = s.store.Revision()
	return listing
}

// write encodes listing to w in the configured format, detecting the
// format when it is auto.
func (s *session) write(w io.Writer, listing export.Listing) error {
	format, err := ui.ParseFormat(s.cfg.Output.Format)
	if err != nil {
		return err
	}
	format = ui.Resolve(format, asFile(w))
	return export.Encode(w, listing, format, export.Options{
		Styled: ui.IsTerminal(asFile(w)),
	})
}

// renderAll invokes every story in catalog order, calling after with the
// active subscriptions once each render returns.
func (s *session) renderAll(after func(kind, story string, active []string)) {
	defer logging.LogDuration(time.Now(), "render all")

	for _, record := range s.api.GetStorybook() {
		for _, story := range record.Stories {
			story.Render()
			if after != nil {
				after(record.Kind, story.Name, s.api.Tracker().Active())
			}
		}
	}
}

func asFile(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}

func fprintf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
