package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort          = "Inspect a component storybook registration"
	MsgRootLong           = "storyreg registers the bundled demo storybook and lets you list, render and reload its stories,\nwatch subscription tracking and read the registration metrics."
	MsgListShort          = "List registered kinds and stories"
	MsgRenderShort        = "Render one story and print the result"
	MsgReloadShort        = "Reload a kind's registration module"
	MsgSubscriptionsShort = "Render every story and show active subscriptions"
	MsgMetricsShort       = "Render every story and print registration metrics"
	MsgVersionShort       = "Print version information"
	MsgCompletionShort    = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Config file (.toml, .yaml or .yml)"
	MsgFlagFormat  = "Output format: auto, term, text, json, yaml, toml, xml, table, markdown"
	MsgFlagRender  = "Invoke every story and include its output"

	// Output
	MsgReloaded          = "Reloaded %s: %d dispose callback(s), catalog revision %d\n"
	MsgSubscriptionsLine = "%s / %s: %s\n"
	MsgNoSubscriptions   = "(none)"
	MsgMetricLine        = "%s%s %g\n"

	// Error messages
	MsgErrStoryNotFound = "story %s/%s not found"
	MsgErrNoCommand     = "no command specified"
)
