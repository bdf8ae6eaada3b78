package serializer

// Option configures one ToTag/FromTag call.
type Option func(*config)

type config struct {
	resolveReferences bool
	strictTypes       bool
	diagSink          *[]Diagnostic
}

func newConfig(opts []Option) *config {
	cfg := &config{
		resolveReferences: true,
		strictTypes:       true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ResolveReferences controls whether already-visited instances are
// tracked and reused within one call. When enabled (the default),
// shared instances and cycles serialize as back-references and are
// restored as shared instances. When disabled, shared instances are
// duplicated and true cycles fail with CyclicReference.
func ResolveReferences(v bool) Option {
	return func(c *config) { c.resolveReferences = v }
}

// StrictTypeMatching controls whether an unresolvable recorded type
// identity is fatal (the default) or skips the field, leaving it at its
// default and recording a Diagnostic.
func StrictTypeMatching(v bool) Option {
	return func(c *config) { c.strictTypes = v }
}

// CollectDiagnostics appends non-fatal diagnostics produced during the
// call (fields skipped under lenient type matching) to sink.
func CollectDiagnostics(sink *[]Diagnostic) Option {
	return func(c *config) { c.diagSink = sink }
}
