package output_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/nestegg/internal/calculation"
	"github.com/rpgo/nestegg/internal/config"
	"github.com/rpgo/nestegg/internal/output"
)

// Every registered formatter renders a real engine result for the example plan.
func TestFormattersRenderExamplePlan(t *testing.T) {
	plan := config.NewInputParser().CreateExamplePlan()
	result, err := calculation.NewCalculationEngine().RunPlan(context.Background(), *plan)
	require.NoError(t, err)

	for _, name := range output.AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			var buf strings.Builder
			require.NoError(t, output.GenerateReport(result, name, &buf))
			assert.NotEmpty(t, buf.String())
		})
	}
}
