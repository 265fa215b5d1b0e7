package groups

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	callArgs := m.Called(ctx, name, args)
	return callArgs.Get(0).([]byte), callArgs.Error(1)
}

func TestResolver_Groups(t *testing.T) {
	ctx := context.Background()

	t.Run("parses primary and supplementary groups", func(t *testing.T) {
		runner := new(mockRunner)
		runner.On("Output", ctx, "id", []string{"-Gn", "alice"}).
			Return([]byte("users hpc ai-h-mcml\n"), nil)

		resolver := NewResolverWithRunner(runner)
		groups := resolver.Groups(ctx, "alice")

		assert.Equal(t, map[string]struct{}{
			"users": {}, "hpc": {}, "ai-h-mcml": {},
		}, groups)
	})

	t.Run("unknown identity resolves to empty set", func(t *testing.T) {
		runner := new(mockRunner)
		runner.On("Output", ctx, "id", []string{"-Gn", "ghost"}).
			Return([]byte(nil), errors.New("no such user"))

		resolver := NewResolverWithRunner(runner)
		assert.Empty(t, resolver.Groups(ctx, "ghost"))
	})
}

func TestResolver_MemberOfAny(t *testing.T) {
	ctx := context.Background()
	projects := map[string]struct{}{"abc123": {}, "def456": {}}

	t.Run("member", func(t *testing.T) {
		runner := new(mockRunner)
		runner.On("Output", ctx, "id", []string{"-Gn", "alice"}).
			Return([]byte("users abc123"), nil)

		assert.True(t, NewResolverWithRunner(runner).MemberOfAny(ctx, "alice", projects))
	})

	t.Run("not a member", func(t *testing.T) {
		runner := new(mockRunner)
		runner.On("Output", ctx, "id", []string{"-Gn", "bob"}).
			Return([]byte("users other"), nil)

		assert.False(t, NewResolverWithRunner(runner).MemberOfAny(ctx, "bob", projects))
	})
}

func TestResolver_Initiative(t *testing.T) {
	ctx := context.Background()

	t.Run("secondary group with suffix tags the identity", func(t *testing.T) {
		runner := new(mockRunner)
		runner.On("Output", ctx, "id", []string{"alice"}).
			Return([]byte("uid=1000(alice) gid=100(users) groups=100(users),2000(pn69za-ai-h-mcml)\n"), nil)

		tag := NewResolverWithRunner(runner).Initiative(ctx, "alice", "ai-h-mcml", "mcml")
		assert.Equal(t, "mcml", tag)
	})

	t.Run("primary group is ignored", func(t *testing.T) {
		runner := new(mockRunner)
		runner.On("Output", ctx, "id", []string{"bob"}).
			Return([]byte("uid=1001(bob) gid=2000(ai-h-mcml) groups=2000(ai-h-mcml)\n"), nil)

		tag := NewResolverWithRunner(runner).Initiative(ctx, "bob", "ai-h-mcml", "mcml")
		assert.Equal(t, "", tag)
	})

	t.Run("no groups section", func(t *testing.T) {
		runner := new(mockRunner)
		runner.On("Output", ctx, "id", []string{"carol"}).
			Return([]byte("uid=1002(carol)\n"), nil)

		tag := NewResolverWithRunner(runner).Initiative(ctx, "carol", "ai-h-mcml", "mcml")
		assert.Equal(t, "", tag)
	})

	t.Run("lookup failure", func(t *testing.T) {
		runner := new(mockRunner)
		runner.On("Output", ctx, "id", []string{"ghost"}).
			Return([]byte(nil), errors.New("no such user"))

		tag := NewResolverWithRunner(runner).Initiative(ctx, "ghost", "ai-h-mcml", "mcml")
		assert.Equal(t, "", tag)
	})
}

func TestParseProjects(t *testing.T) {
	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}}, ParseProjects("a, b,,"))
	assert.Empty(t, ParseProjects(""))
}
