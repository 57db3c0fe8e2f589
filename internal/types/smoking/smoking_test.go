package smoking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestCreateRequestValidate(t *testing.T) {
	valid := CreateRequest{
		Date:           "2026-01-10",
		CigaretteCount: intPtr(5),
		Location:       strPtr(LocationSocial),
	}

	t.Run("valid", func(t *testing.T) {
		req := valid
		require.NoError(t, req.Validate())
		assert.Equal(t, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), req.ParsedDate())
	})

	t.Run("zero count allowed", func(t *testing.T) {
		req := valid
		req.CigaretteCount = intPtr(0)
		assert.NoError(t, req.Validate())
	})

	t.Run("negative count rejected", func(t *testing.T) {
		req := valid
		req.CigaretteCount = intPtr(-1)
		assert.Error(t, req.Validate())
	})

	t.Run("missing count rejected", func(t *testing.T) {
		req := valid
		req.CigaretteCount = nil
		assert.Error(t, req.Validate())
	})

	t.Run("bad date", func(t *testing.T) {
		req := valid
		req.Date = "2026-13-40"
		assert.Error(t, req.Validate())
	})

	t.Run("unknown location", func(t *testing.T) {
		req := valid
		req.Location = strPtr("Bar")
		assert.Error(t, req.Validate())
	})

	t.Run("nil location allowed", func(t *testing.T) {
		req := valid
		req.Location = nil
		assert.NoError(t, req.Validate())
	})
}

func TestEntryToResponse(t *testing.T) {
	e := &Entry{
		Date:           time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
		CigaretteCount: 0,
	}
	resp := e.ToResponse()
	assert.Equal(t, "2026-01-10", resp.Date)
	assert.Equal(t, 0, resp.CigaretteCount)
	assert.Nil(t, resp.Location)
}
