package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/forge/internal/core/domain"
)

func TestNewEnvironment(t *testing.T) {
	env := domain.NewEnvironment([]string{"A=1", "B=two=parts", "garbage", "=x", "A=3"}, false)

	assert.Equal(t, 2, env.Len())
	assert.Equal(t, "3", env.Get("A"))
	assert.Equal(t, "two=parts", env.Get("B"))

	_, ok := env.Lookup("a")
	assert.False(t, ok, "names are case-sensitive unless folding")
}

func TestEnvironment_FoldCase(t *testing.T) {
	env := domain.NewEnvironment([]string{"Path=C:\\Windows"}, true)

	assert.Equal(t, "C:\\Windows", env.Get("PATH"))

	out := env.Apply(domain.EnvLayer{Set: map[string]string{"PATH": "C:\\Qt\\bin;C:\\Windows"}})
	assert.Equal(t, []string{"Path=C:\\Qt\\bin;C:\\Windows"}, out.Entries())
	assert.Equal(t, "C:\\Windows", env.Get("Path"), "receiver must stay untouched")
}

func TestEnvironment_Apply_UnsetBeforeSet(t *testing.T) {
	base := domain.NewEnvironment([]string{"MSYSTEM=MINGW64", "KEEP=1"}, false)

	out := base.Apply(domain.EnvLayer{
		Set:   map[string]string{"NEW": "x"},
		Unset: []string{"MSYSTEM"},
	})

	assert.Equal(t, []string{"KEEP=1", "NEW=x"}, out.Entries())
}

func TestComposeEnv_LayerOrder(t *testing.T) {
	keys := []string{"PATH", "MSYSTEM", "CC"}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			base := domain.NewEnvironment([]string{key + "=base"}, false)
			toolchain := domain.EnvLayer{Set: map[string]string{key: "toolchain"}}
			user := domain.EnvLayer{Set: map[string]string{key: "user"}}

			got := domain.ComposeEnv(base, toolchain, user)

			assert.Equal(t, "user", got.Get(key))
		})
	}
}

func TestComposeEnv_UserReinstatesSanitizedVariable(t *testing.T) {
	base := domain.NewEnvironment([]string{"SHELL=/usr/bin/bash"}, true)
	toolchain := domain.EnvLayer{Unset: []string{"SHELL"}}
	user := domain.EnvLayer{Set: map[string]string{"SHELL": "cmd.exe"}}

	got := domain.ComposeEnv(base, toolchain, user)

	assert.Equal(t, "cmd.exe", got.Get("SHELL"))
	_, ok := domain.ComposeEnv(base, toolchain, domain.EnvLayer{}).Lookup("SHELL")
	assert.False(t, ok)
}

func TestEnvLayer_IsEmpty(t *testing.T) {
	assert.True(t, domain.EnvLayer{}.IsEmpty())
	assert.False(t, domain.EnvLayer{Unset: []string{"X"}}.IsEmpty())
}
