package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
	assert.Equal(t, "█████ 100%", ProgressBar(9, 3, 5))
	assert.Equal(t, "█████ 100%", ProgressBar(3, 3, 5))
}

func TestPanelMono(t *testing.T) {
	SetTheme("mono")
	defer func() { SetTheme("classic"); SetColorForcing(false, false) }()

	var buf bytes.Buffer
	Panel(&buf, []string{"ab", "abcd"})
	assert.Equal(t, "+------+\n| ab   |\n| abcd |\n+------+\n", buf.String())
}

func TestPanelIgnoresANSIWidth(t *testing.T) {
	SetColorForcing(true, false)
	defer SetColorForcing(false, false)

	var buf bytes.Buffer
	Panel(&buf, []string{C(fgRed, "red"), "plain"})
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, width(lines[1]), width(lines[2]))
}

func TestNotices(t *testing.T) {
	var out, errOut bytes.Buffer
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	defer func() { Stdout, Stderr = oldOut, oldErr }()

	OK("added")
	Fail("nope")
	assert.Equal(t, "✔ added\n", out.String())
	assert.Equal(t, "✖ nope\n", errOut.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
}

func TestStatusColor(t *testing.T) {
	SetTheme("classic")
	assert.Equal(t, fgRed, StatusColor("status-overdue"))
	assert.Equal(t, fgGreen, StatusColor("status-complete"))
	assert.Equal(t, fgGray, StatusColor("unknown"))
}
