package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mj41/recipedump/nbt"
	"github.com/mj41/recipedump/palette"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testIDs = `{
	"minecraft:air": 0,
	"minecraft:planks": 5,
	"minecraft:wool": 35,
	"minecraft:stick": 280,
	"minecraft:potion": 373,
	"minecraft:nether_wart": 372
}`

func dumpJSON(version int) string {
	return `{
		"protocolVersion": ` + itoa(version) + `,
		"recipes": [
			{"type": 1, "craftingTag": "crafting_table", "recipeId": "minecraft:stick", "width": 1, "height": 2,
			 "inputs": [{"id": 5, "count": 1}, {"id": 5, "count": 1}],
			 "outputs": [{"id": 280, "count": 4}]},
			{"type": 0, "craftingTag": "crafting_table", "recipeId": "minecraft:wool",
			 "inputs": [{"id": 35, "count": 1, "blockRuntimeId": 1}],
			 "outputs": [{"id": 35, "count": 1}]}
		],
		"potionMixes": [{"inputId": 373, "inputMeta": 0, "reagentId": 372, "reagentMeta": 0, "outputId": 373, "outputMeta": 4}],
		"containerMixes": []
	}`
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

type fixture struct {
	dir, ids, palette, out string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	fx := fixture{
		dir:     dir,
		ids:     filepath.Join(dir, "legacy_item_ids.json"),
		palette: filepath.Join(dir, "block_palette.nbt"),
		out:     filepath.Join(dir, "out"),
	}
	require.NoError(t, os.WriteFile(fx.ids, []byte(testIDs), 0o644))
	pal := palette.New([]nbt.Compound{
		{{Name: "name", Value: "minecraft:air"}},
		{{Name: "name", Value: "minecraft:wool"}, {Name: "states", Value: nbt.Compound{{Name: "color", Value: "white"}}}},
	})
	require.NoError(t, pal.Save(fx.palette))
	return fx
}

func (fx fixture) writeDump(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(fx.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	for _, cmd := range rootCmd.Commands() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		})
	}
	configPath, verbose = "", false
	t.Setenv("RECIPEDUMP_PALETTE", "")
	t.Setenv("RECIPEDUMP_LEGACY_IDS", "")
	t.Setenv("RECIPEDUMP_OUTPUT_DIR", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func readDoc(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestExportParallel(t *testing.T) {
	fx := newFixture(t)
	a := fx.writeDump(t, "a.json", dumpJSON(390))
	b := fx.writeDump(t, "b.json", dumpJSON(407))

	err := runCLI(t, "export", "--legacy-ids", fx.ids, "--palette", fx.palette,
		"--output-dir", fx.out, "-j", "2", a, b)
	require.NoError(t, err)

	for _, version := range []float64{390, 407} {
		doc := readDoc(t, filepath.Join(fx.out, "recipes_"+itoa(int(version))+".json"))
		assert.Equal(t, version, doc["version"])

		recipes := doc["recipes"].([]any)
		require.Len(t, recipes, 2)
		shaped := recipes[0].(map[string]any)
		assert.Equal(t, []any{"A", "A"}, shaped["shape"])

		wool := recipes[1].(map[string]any)["input"].([]any)[0].(map[string]any)
		assert.NotEmpty(t, wool["block_state_b64"])

		mixes := doc["potionMixes"].([]any)
		require.Len(t, mixes, 1)
		assert.Equal(t, "minecraft:nether_wart", mixes[0].(map[string]any)["reagentId"])
	}
}

func TestExportWithoutPalette(t *testing.T) {
	fx := newFixture(t)
	dump := fx.writeDump(t, "a.json", dumpJSON(390))
	out := filepath.Join(fx.dir, "recipes.json")

	err := runCLI(t, "export", "--legacy-ids", fx.ids, "--palette", filepath.Join(fx.dir, "missing.nbt"),
		"--output-dir", fx.out, "--output", out, "--indent", "", dump)
	require.NoError(t, err)

	doc := readDoc(t, out)
	wool := doc["recipes"].([]any)[1].(map[string]any)["input"].([]any)[0].(map[string]any)
	assert.NotContains(t, wool, "block_state_b64")
}

func TestExportOverrideVersion(t *testing.T) {
	fx := newFixture(t)
	dump := fx.writeDump(t, "a.json", dumpJSON(390))

	err := runCLI(t, "export", "--legacy-ids", fx.ids, "--palette", fx.palette,
		"--output-dir", fx.out, "--protocol-version", "419", dump)
	require.NoError(t, err)
	assert.Equal(t, float64(419), readDoc(t, filepath.Join(fx.out, "recipes_419.json"))["version"])
}

func TestExportConfigFile(t *testing.T) {
	fx := newFixture(t)
	dump := fx.writeDump(t, "a.json", dumpJSON(390))
	cfgPath := filepath.Join(fx.dir, "recipedump.yaml")
	cfg := "legacy_ids: " + fx.ids + "\npalette: " + fx.palette + "\noutput_dir: " + fx.out + "\nparallelism: 1\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	require.NoError(t, runCLI(t, "export", "-c", cfgPath, dump))
	assert.FileExists(t, filepath.Join(fx.out, "recipes_390.json"))
}

func TestExportFailures(t *testing.T) {
	fx := newFixture(t)

	t.Run("unknown item", func(t *testing.T) {
		dump := fx.writeDump(t, "bad.json", `{"protocolVersion": 1, "recipes": [
			{"type": 0, "recipeId": "minecraft:mystery", "inputs": [{"id": 999, "count": 1}]}]}`)
		err := runCLI(t, "export", "--legacy-ids", fx.ids, "--output-dir", fx.out, dump)
		require.Error(t, err)
		assert.ErrorContains(t, err, "minecraft:mystery")
		assert.NoFileExists(t, filepath.Join(fx.out, "recipes_1.json"))
	})

	t.Run("same version twice", func(t *testing.T) {
		a := fx.writeDump(t, "a.json", dumpJSON(500))
		b := fx.writeDump(t, "b.json", dumpJSON(500))
		err := runCLI(t, "export", "--legacy-ids", fx.ids, "--output-dir", fx.out, "-j", "1", a, b)
		assert.ErrorContains(t, err, "both export to")
	})

	t.Run("output with several dumps", func(t *testing.T) {
		a := fx.writeDump(t, "a.json", dumpJSON(1))
		err := runCLI(t, "export", "--legacy-ids", fx.ids, "--output", "x.json", a, a)
		assert.ErrorContains(t, err, "exactly one dump")
	})

	t.Run("missing legacy ids", func(t *testing.T) {
		a := fx.writeDump(t, "a.json", dumpJSON(1))
		err := runCLI(t, "export", "--legacy-ids", filepath.Join(fx.dir, "none.json"), "--output-dir", fx.out, a)
		assert.ErrorContains(t, err, "loading legacy IDs")
	})

	t.Run("bad parallelism", func(t *testing.T) {
		a := fx.writeDump(t, "a.json", dumpJSON(1))
		err := runCLI(t, "export", "--legacy-ids", fx.ids, "-j", "0", a)
		assert.ErrorContains(t, err, "parallelism")
	})
}

func TestPaletteCommand(t *testing.T) {
	fx := newFixture(t)
	out := filepath.Join(fx.dir, "canonical.nbt")
	require.NoError(t, runCLI(t, "palette", fx.palette, out))

	pal, err := palette.Open(out)
	require.NoError(t, err)
	assert.Equal(t, 2, pal.Len())
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "12 B", humanSize(12))
	assert.Equal(t, "2.0 KiB", humanSize(2048))
	assert.Equal(t, "1.5 MiB", humanSize(3<<19))
}
