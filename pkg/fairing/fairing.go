package fairing

import (
	"go.uber.org/zap"

	"github.com/Faultbox/fairingkit/pkg/math"
)

// Fairing owns a profile, its options and the shell generated from them. It
// is the caller-side driver of the build/rebuild/jettison lifecycle and is not
// safe for concurrent use.
type Fairing struct {
	profile  *Profile
	opts     Options
	jettison JettisonSpec
	shell    *Shell
	log      *zap.Logger

	jettisoned bool
}

// New creates a fairing and builds its first shell.
func New(p *Profile, opts Options, spec JettisonSpec, log *zap.Logger) (*Fairing, error) {
	if log == nil {
		log = zap.NewNop()
	}
	f := &Fairing{
		profile:  p,
		opts:     opts,
		jettison: spec,
		log:      log,
	}
	if err := f.Rebuild(); err != nil {
		return nil, err
	}
	return f, nil
}

// Shell returns the current shell, nil after jettison.
func (f *Fairing) Shell() *Shell {
	return f.shell
}

// Options returns the requested options.
func (f *Fairing) Options() Options {
	return f.opts
}

// Profile returns the owned profile.
func (f *Fairing) Profile() *Profile {
	return f.profile
}

// Jettisoned reports whether the panels have been detached.
func (f *Fairing) Jettisoned() bool {
	return f.jettisoned
}

// SetProfile swaps the profile and rebuilds. On error the previous profile
// and shell are kept.
func (f *Fairing) SetProfile(p *Profile) error {
	return f.update(p, f.opts)
}

// SetOptions swaps the options and rebuilds. On error the previous options
// and shell are kept.
func (f *Fairing) SetOptions(opts Options) error {
	return f.update(f.profile, opts)
}

// SetJettisonSpec replaces the spec used by Jettison.
func (f *Fairing) SetJettisonSpec(spec JettisonSpec) {
	f.jettison = spec
}

func (f *Fairing) update(p *Profile, opts Options) error {
	if f.jettisoned {
		return ErrAlreadyJettisoned
	}
	s, err := BuildWithLogger(p, opts, f.log)
	if err != nil {
		return err
	}
	f.profile, f.opts, f.shell = p, opts, s
	return nil
}

// Rebuild regenerates the shell from the current profile and options.
func (f *Fairing) Rebuild() error {
	return f.update(f.profile, f.opts)
}

// Jettison detaches the panels of the current shell. The fairing is spent
// afterwards: Rebuild and further Jettison calls return ErrAlreadyJettisoned.
func (f *Fairing) Jettison(inherited math.Vec3) ([]DetachedPanel, error) {
	if f.jettisoned {
		return nil, ErrAlreadyJettisoned
	}
	panels, err := f.shell.Jettison(f.jettison, inherited)
	if err != nil {
		return nil, err
	}
	f.jettisoned = true
	f.shell = nil
	f.log.Info("fairing jettisoned", zap.Int("panels", len(panels)))
	return panels, nil
}
