package container

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-storefront/pkg/helpers"
)

func TestGetJWT_ReturnsOnlyWhatWasSet(t *testing.T) {
	t.Cleanup(func() { SetJWT(nil) })

	SetJWT(nil)
	_ = helpers.NewJWTManager("a", "r", time.Minute, time.Hour)
	assert.Nil(t, GetJWT())

	m := helpers.NewJWTManager("a", "r", time.Minute, time.Hour)
	SetJWT(m)
	assert.Same(t, m, GetJWT())
}
