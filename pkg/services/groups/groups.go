package groups

import (
	"context"
	"os/exec"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Runner executes an external command and returns its stdout. Abstracted so
// tests do not depend on the host's account database.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Resolver answers group-membership questions for identities via the
// system's id command.
type Resolver struct {
	runner Runner
}

func NewResolver() *Resolver {
	return &Resolver{runner: execRunner{}}
}

// NewResolverWithRunner injects a command runner, for tests.
func NewResolverWithRunner(runner Runner) *Resolver {
	return &Resolver{runner: runner}
}

// Groups returns every group the identity belongs to, primary and
// supplementary. Unknown identities resolve to the empty set rather than
// an error: the accounting feed routinely contains identities that no
// longer exist on the login nodes.
func (r *Resolver) Groups(ctx context.Context, identity string) map[string]struct{} {
	out, err := r.runner.Output(ctx, "id", "-Gn", identity)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("identity", identity).Err(err).Msg("group lookup failed")
		return map[string]struct{}{}
	}
	set := make(map[string]struct{})
	for _, name := range strings.Fields(strings.TrimSpace(string(out))) {
		set[name] = struct{}{}
	}
	return set
}

// MemberOfAny reports whether the identity belongs to at least one of the
// given project groups.
func (r *Resolver) MemberOfAny(ctx context.Context, identity string, projects map[string]struct{}) bool {
	for name := range r.Groups(ctx, identity) {
		if _, ok := projects[name]; ok {
			return true
		}
	}
	return false
}

var groupNameRe = regexp.MustCompile(`\(([^)]+)\)`)

// Initiative returns the given tag when one of the identity's secondary
// groups carries the configured suffix, and "" otherwise. The primary group
// (first in the id output) is deliberately ignored.
func (r *Resolver) Initiative(ctx context.Context, identity, suffix, tag string) string {
	out, err := r.runner.Output(ctx, "id", identity)
	if err != nil {
		return ""
	}
	text := string(out)
	i := strings.Index(text, "groups=")
	if i < 0 {
		return ""
	}
	names := groupNameRe.FindAllStringSubmatch(text[i:], -1)
	for _, match := range names[min(1, len(names)):] {
		if strings.HasSuffix(match[1], suffix) {
			return tag
		}
	}
	return ""
}
