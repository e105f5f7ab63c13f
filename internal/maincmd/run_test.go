package maincmd_test

import (
	"bytes"
	"flag"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"

	"github.com/mna/lox/internal/filetest"
	"github.com/mna/lox/internal/maincmd"
)

var testUpdateRunTests = flag.Bool("test.update-run-tests", false, "If set, replace expected end-to-end test results with actual results.")

// TestRun executes every script in testdata/in against both execution
// models and checks stdout against the same golden file, since the vm
// and tree pipelines must agree on every observable result.
func TestRun(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".lox") {
		for _, model := range []string{"vm", "tree"} {
			t.Run(fi.Name()+"/"+model, func(t *testing.T) {
				var buf, ebuf bytes.Buffer
				stdio := mainer.Stdio{
					Stdout: &buf,
					Stderr: &ebuf,
				}

				c := maincmd.Cmd{}
				code := c.Main([]string{"lox", "--model", model, "--file", filepath.Join(srcDir, fi.Name())}, stdio)
				if code != mainer.Success {
					t.Fatalf("exit code %d, stderr: %s", code, ebuf.String())
				}
				filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateRunTests)
			})
		}
	}
}
