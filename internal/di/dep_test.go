package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepMode_String(t *testing.T) {
	assert.Equal(t, "eager", DepEager.String())
	assert.Equal(t, "lazy", DepLazy.String())
	assert.Equal(t, "optional", DepOptional.String())
	assert.Equal(t, "lazy_optional", DepLazyOptional.String())
	assert.Equal(t, "unknown", DepMode(42).String())
}

func TestDepMode_IsLazy(t *testing.T) {
	assert.False(t, DepEager.IsLazy())
	assert.True(t, DepLazy.IsLazy())
	assert.False(t, DepOptional.IsLazy())
	assert.True(t, DepLazyOptional.IsLazy())
}

func TestDepMode_IsOptional(t *testing.T) {
	assert.False(t, DepEager.IsOptional())
	assert.False(t, DepLazy.IsOptional())
	assert.True(t, DepOptional.IsOptional())
	assert.True(t, DepLazyOptional.IsOptional())
}

func TestDep_Constructors(t *testing.T) {
	assert.Equal(t, Dep{Key: NewKey("db"), Mode: DepEager}, Eager("db"))
	assert.Equal(t, Dep{Key: NewKey("db"), Mode: DepLazy}, Lazy("db"))
	assert.Equal(t, Dep{Key: NewKey("db"), Mode: DepOptional}, Optional("db"))
	assert.Equal(t, Dep{Key: NewKey("db"), Mode: DepLazyOptional}, LazyOptional("db"))

	qualified := KeyDep(QualifiedKey("db", "replica"), DepLazy)
	assert.Equal(t, "db[replica]", qualified.Key.String())
	assert.Equal(t, DepLazy, qualified.Mode)
}

func TestDepNames(t *testing.T) {
	deps := []Dep{Eager("db"), KeyDep(QualifiedKey("cache", "hot"), DepLazy)}
	assert.Equal(t, []string{"db", "cache[hot]"}, DepNames(deps))
}

func TestDepsFromNames(t *testing.T) {
	deps := DepsFromNames([]string{"db", "cache"})
	assert.Equal(t, []Dep{Eager("db"), Eager("cache")}, deps)
}

func TestDepsFromKeys(t *testing.T) {
	keys := []Key{NewKey("db"), QualifiedKey("db", "replica")}
	deps := DepsFromKeys(keys)
	assert.Len(t, deps, 2)
	assert.Equal(t, DepEager, deps[0].Mode)
	assert.Equal(t, "db[replica]", deps[1].Key.String())
}

func TestLifetime_String(t *testing.T) {
	assert.Equal(t, "singleton", LifetimeSingleton.String())
	assert.Equal(t, "transient", LifetimeTransient.String())
	assert.Equal(t, "scoped", LifetimeScoped.String())
}

func TestMergeOptions_DefaultSingleton(t *testing.T) {
	merged := mergeOptions(nil)
	assert.Equal(t, LifetimeSingleton, merged.lifetime())
}

func TestMergeOptions_LastLifecycleWins(t *testing.T) {
	merged := mergeOptions([]RegisterOption{Singleton(), Transient(), Scoped()})
	assert.Equal(t, LifetimeScoped, merged.lifetime())
}

func TestMergeOptions_Accumulates(t *testing.T) {
	merged := mergeOptions([]RegisterOption{
		WithDependencies("db"),
		WithDependencies("cache"),
		WithDeps(Lazy("mailer")),
		WithMetadata("team", "platform"),
		WithMetadata("tier", "core"),
		WithGroup("storage"),
		WithGroup("infra"),
	})

	assert.Equal(t, []string{"db", "cache"}, merged.dependencies)
	assert.Equal(t, map[string]string{"team": "platform", "tier": "core"}, merged.metadata)
	assert.Equal(t, []string{"storage", "infra"}, merged.groups)

	// Dep specs come first, then names as eager deps.
	all := merged.allDeps()
	assert.Equal(t, []Dep{Lazy("mailer"), Eager("db"), Eager("cache")}, all)
}

func TestMergeOptions_Qualifier(t *testing.T) {
	merged := mergeOptions([]RegisterOption{WithQualifier("primary"), WithQualifier("replica")})
	assert.Equal(t, "replica", merged.qualifier)
}

func TestRegisterOption_AllDepsEmpty(t *testing.T) {
	assert.Nil(t, mergeOptions(nil).allDeps())
}
