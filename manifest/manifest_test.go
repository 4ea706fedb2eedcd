package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/omix/manifest"
	"github.com/sghaida/omix/mixin"
)

const coffeeManifest = `
traits:
  - name: Coffee
    declares: [describe, price]
    fields:
      basePrice: number
    ops:
      describe: {value: coffee}
      price: {field: basePrice}
  - name: Sugar
    ops:
      describe: {append: " with sugar"}
      price: {add: 0.2}
  - name: Milk
    ops:
      describe: {append: " with milk"}
      price: {add: 0.5}
compose: [Coffee, Sugar, Milk]
fields:
  basePrice: 1
invoke: [describe, price]
`

// TestParse_CompileAndInvoke verifies the full path: parse, compile, build,
// invoke.
func TestParse_CompileAndInvoke(t *testing.T) {
	t.Parallel()

	doc, err := manifest.Parse([]byte(coffeeManifest))
	require.NoError(t, err)

	assert.Equal(t, []mixin.OperationName{mixin.Op("describe"), mixin.Op("price")}, doc.InvokeOps())

	comp, err := doc.Composition()
	require.NoError(t, err)
	assert.Equal(t, []string{"Coffee", "Sugar", "Milk"}, comp.Traits())

	inst, err := comp.Build()
	require.NoError(t, err)

	desc, err := inst.Invoke(mixin.Op("describe"))
	require.NoError(t, err)
	assert.Equal(t, "coffee with sugar with milk", desc)

	// The integer initializer was widened to float64 for the number shape.
	price, err := inst.Invoke(mixin.Op("price"))
	require.NoError(t, err)
	assert.InDelta(t, 1.7, price.(float64), 1e-9)
}

// TestParse_ChainsAreInspectable verifies a manifest composition can be
// linearized without building.
func TestParse_ChainsAreInspectable(t *testing.T) {
	t.Parallel()

	doc, err := manifest.Parse([]byte(coffeeManifest))
	require.NoError(t, err)

	comp, err := doc.Composition()
	require.NoError(t, err)

	table, err := comp.Linearize()
	require.NoError(t, err)

	chain, ok := table.Chain(mixin.Op("price"))
	require.True(t, ok)
	assert.Equal(t, []string{"Coffee", "Sugar", "Milk"}, chain.Traits())
}

// TestParse_Invalid covers document-level validation failures.
func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "no traits",
			yaml: "compose: [A]\n",
			want: "no traits",
		},
		{
			name: "empty compose",
			yaml: "traits:\n  - name: A\n",
			want: "compose order is empty",
		},
		{
			name: "unnamed trait",
			yaml: "traits:\n  - declares: [m]\ncompose: [A]\n",
			want: "without a name",
		},
		{
			name: "duplicate trait",
			yaml: "traits:\n  - name: A\n  - name: A\ncompose: [A]\n",
			want: `trait "A" declared twice`,
		},
		{
			name: "unknown shape",
			yaml: "traits:\n  - name: A\n    fields: {x: decimal}\ncompose: [A]\n",
			want: `unknown shape "decimal"`,
		},
		{
			name: "undeclared compose reference",
			yaml: "traits:\n  - name: A\ncompose: [A, B]\n",
			want: `undeclared trait "B"`,
		},
		{
			name: "not yaml",
			yaml: ":\n-",
			want: "manifest:",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := manifest.Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

// TestComposition_InvalidOps covers per-operation compile failures.
func TestComposition_InvalidOps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "two kinds",
			yaml: "traits:\n  - name: A\n    ops:\n      m: {value: 1, add: 2}\ncompose: [A]\n",
			want: "exactly one of",
		},
		{
			name: "no kind",
			yaml: "traits:\n  - name: A\n    ops:\n      m: {}\ncompose: [A]\n",
			want: "exactly one of",
		},
		{
			name: "unknown key",
			yaml: "traits:\n  - name: A\n    ops:\n      m: {multiply: 2}\ncompose: [A]\n",
			want: `trait "A" op "m"`,
		},
		{
			name: "empty field name",
			yaml: "traits:\n  - name: A\n    ops:\n      m: {field: \"\"}\ncompose: [A]\n",
			want: "empty field name",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc, err := manifest.Parse([]byte(tc.yaml))
			require.NoError(t, err)
			_, err = doc.Composition()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

// TestComposition_RuntimeKindMismatch verifies append/add bodies reject
// mismatched next results at invoke time.
func TestComposition_RuntimeKindMismatch(t *testing.T) {
	t.Parallel()

	doc, err := manifest.Parse([]byte(`
traits:
  - name: A
    ops:
      m: {value: coffee}
  - name: B
    ops:
      m: {add: 0.5}
compose: [A, B]
invoke: [m]
`))
	require.NoError(t, err)

	comp, err := doc.Composition()
	require.NoError(t, err)
	inst, err := comp.Build()
	require.NoError(t, err)

	_, err = inst.Invoke(mixin.Op("m"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add over non-number")
}

// TestLoad_MissingFile verifies file errors carry the manifest prefix.
func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := manifest.Load("does/not/exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest:")
}
