package clientapi

import (
	"github.com/arthur-debert/storyreg/pkg/channel"
	"github.com/arthur-debert/storyreg/pkg/subscriptions"
	"github.com/arthur-debert/storyreg/pkg/types"
)

// metaSubscriptionName names the subscription that forwards channel
// registrations into the tracker.
const metaSubscriptionName = "clientapi.channel-registrar"

// newMetaSubscription returns a subscription that, while active, listens
// on ch for channel.EventRegisterSubscription and registers the announced
// subscriptions with the tracker.
func (a *ClientAPI) newMetaSubscription(ch channel.Channel) *subscriptions.Subscription {
	return subscriptions.New(metaSubscriptionName, func() func() {
		listener := a.tracker.Registrar()
		ch.On(channel.EventRegisterSubscription, listener)
		return func() {
			ch.RemoveListener(channel.EventRegisterSubscription, listener)
		}
	})
}

// metaSubscription returns the meta subscription for ch. A different
// channel gets a new subscription, so the one listening on the previous
// channel is not registered again and is torn down by the same render.
// Callers hold renderMu.
func (a *ClientAPI) metaSubscription(ch channel.Channel) *subscriptions.Subscription {
	if a.meta == nil || a.metaChannel != ch {
		a.meta = a.newMetaSubscription(ch)
		a.metaChannel = ch
	}
	return a.meta
}

// withSubscriptionTracking is the outermost decorator of every story.
// Subscriptions that a render does not register again are torn down once
// it returns.
func (a *ClientAPI) withSubscriptionTracking(next types.StoryFn, ctx types.StoryContext) types.Renderable {
	ch := a.channel.GetChannel()
	if !a.channel.HasChannel() || ch == nil {
		a.metrics.Rendered(false)
		return next()
	}

	a.renderMu.Lock()
	defer a.renderMu.Unlock()

	a.logger.Trace().Str("kind", ctx.Kind).Str("story", ctx.Story).Msg("Tracking subscriptions")

	a.tracker.MarkAllAsUnused()
	a.tracker.Register(a.metaSubscription(ch))
	result := next()
	a.tracker.ClearUnused()

	a.metrics.Rendered(true)
	return result
}
