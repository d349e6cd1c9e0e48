package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbdiff/internal/core"
)

func TestSummaryFormatterEmpty(t *testing.T) {
	sf := summaryFormatter{}
	for _, d := range []*core.SchemaDescription{nil, {}} {
		result, err := sf.FormatSchema(d)
		require.NoError(t, err)
		assert.Equal(t, "No tables or sequences found.\n", result)
	}
}

func TestSummaryFormatterCounts(t *testing.T) {
	result, err := summaryFormatter{}.FormatSchema(usersSchema())
	require.NoError(t, err)

	assert.Contains(t, result, "Schema Summary")
	assert.Contains(t, result, "Tables:    1\n")
	assert.Contains(t, result, "Columns:   2\n")
	assert.Contains(t, result, "Indexes:   1\n")
	assert.Contains(t, result, "Sequences: 1\n")
	assert.Contains(t, result, "  public.users (2 cols, 1 idx, pk id)\n")
	assert.Contains(t, result, "    primary users_pkey (id)\n")
	assert.Contains(t, result, "  public.users_id_seq\n")
}

func TestSummaryFormatterIndexKinds(t *testing.T) {
	d := &core.SchemaDescription{
		Tables: []*core.Table{{
			Name:    "events",
			Schema:  "app",
			Columns: []*core.Column{{Name: "payload", Type: "jsonb"}},
			Indexes: []*core.Index{
				{Name: "events_payload_idx", Schema: "app", Type: "gin", Keys: []string{"payload"}},
				{Name: "events_key_idx", Schema: "app", Unique: true, Type: "btree", Keys: []string{"lower(key)", "kind"}},
			},
		}},
		Sequences: []*core.Sequence{{Schema: "app", Name: "ticket_seq", Cycle: true}},
	}

	result, err := summaryFormatter{}.FormatSchema(d)
	require.NoError(t, err)
	assert.Contains(t, result, "  app.events (1 col, 2 idx)\n")
	assert.Contains(t, result, "    gin events_payload_idx (payload)\n")
	assert.Contains(t, result, "    unique events_key_idx (lower(key), kind)\n")
	assert.Contains(t, result, "  app.ticket_seq (cycle)\n")
}
