package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/models"
)

func TestSeedNeeded(t *testing.T) {
	needed, err := seedNeeded(nil)
	require.NoError(t, err)
	assert.False(t, needed, "present marker means no reseed")

	needed, err = seedNeeded(mongo.ErrNoDocuments)
	require.NoError(t, err)
	assert.True(t, needed, "missing marker means seed")

	// A transient read failure must not look like a fresh database.
	needed, err = seedNeeded(errors.New("connection reset"))
	require.Error(t, err)
	assert.False(t, needed)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSeedDatasetInvariants(t *testing.T) {
	for _, p := range seedProducts {
		assert.True(t, models.ValidGSTPercent(p.GST), "%s carries gst %d", p.Name, p.GST)
		assert.Greater(t, p.Price, p.PurchasePrice, "%s must have a margin", p.Name)
		assert.GreaterOrEqual(t, p.Stock, 0.0, p.Name)
	}
	for _, c := range seedCustomers {
		_, known := models.TierProfiles[c.Tier]
		assert.True(t, known, "%s has unknown tier %q", c.Name, c.Tier)
		assert.GreaterOrEqual(t, c.Outstanding, 0.0, c.Name)
	}
}
