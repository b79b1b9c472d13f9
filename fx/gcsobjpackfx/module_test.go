package gcsobjpackfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/absfs/objpack"
)

func TestModule(t *testing.T) {
	// Building the client does no I/O, so the emulator need not be up.
	var client *objpack.Client
	app := fxtest.New(t,
		fx.Supply(zap.NewNop()),
		fx.Supply(Config{
			Bucket:   "artifacts",
			Prefix:   "objpack",
			Endpoint: "http://127.0.0.1:4443/storage/v1/",
		}),
		Module,
		fx.Populate(&client),
	)
	app.RequireStart()
	assert.NotNil(t, client)
	app.RequireStop()
}

func TestModule_BadConfigFile(t *testing.T) {
	app := fx.New(
		fx.NopLogger,
		fx.Supply(zap.NewNop()),
		fx.Supply(Config{Bucket: "artifacts", Endpoint: "http://127.0.0.1:4443/storage/v1/", ConfigFile: "/nonexistent/objpack.yaml"}),
		Module,
		fx.Invoke(func(*objpack.Client) {}),
	)
	assert.Error(t, app.Err())
}
