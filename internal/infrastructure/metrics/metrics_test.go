package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFallbackActivated(t *testing.T) {
	before := testutil.ToFloat64(fallbackActivations.WithLabelValues("publication", "create"))
	FallbackActivated("publication", "create")
	FallbackActivated("publication", "create")
	after := testutil.ToFloat64(fallbackActivations.WithLabelValues("publication", "create"))

	assert.Equal(t, before+2, after)
}

func TestDurableBackendUp(t *testing.T) {
	SetDurableBackendUp(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(durableBackendUp))

	SetDurableBackendUp(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(durableBackendUp))
}

func TestImageUploadedAndLocalRecords(t *testing.T) {
	ImageUploaded("members-images", false)
	assert.GreaterOrEqual(t, testutil.ToFloat64(imageUploads.WithLabelValues("members-images", "error")), float64(1))

	SetLocalRecords("member", 3)
	assert.Equal(t, float64(3), testutil.ToFloat64(localRecords.WithLabelValues("member")))
}
