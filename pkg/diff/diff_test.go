package diff

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestLineDiff(t *testing.T) {
	before := "Repot:\n    • check roots\n\nPruning:\n"
	after := "Repot:\n    • check roots\n\n    • new soil\n\nPruning:\n"

	out := LineDiff(before, after)
	assert.Contains(t, out, "+     • new soil\n")
	assert.Contains(t, out, "  Repot:\n")
	assert.NotContains(t, out, "- ")

	added, removed := Stat(before, after)
	assert.Equal(t, 2, added)
	assert.Equal(t, 0, removed)

	assert.Empty(t, LineDiff(before, before))
}

func TestLineDiff_Removal(t *testing.T) {
	out := LineDiff("a\nb\nc\n", "a\nc\n")
	assert.Equal(t, "  a\n- b\n  c\n", out)
}

// 新文本中的每一行都以未修改或新增的形式出现在 diff 中
func TestProperty_DiffReconstructsAfter(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	lineGen := gen.SliceOf(gen.AlphaString())

	properties.Property("kept and added lines rebuild the new text", prop.ForAll(
		func(before, after []string) bool {
			b := strings.Join(before, "\n") + "\n"
			a := strings.Join(after, "\n") + "\n"
			out := LineDiff(b, a)
			if b == a {
				return out == ""
			}

			var rebuilt []string
			for _, line := range splitLines(out) {
				if strings.HasPrefix(line, "  ") || strings.HasPrefix(line, "+ ") {
					rebuilt = append(rebuilt, line[2:])
				}
			}
			return strings.Join(rebuilt, "\n") == strings.Join(splitLines(a), "\n")
		},
		lineGen, lineGen,
	))

	properties.TestingRun(t)
}
