package finance

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// This file tests the examples of README.md and docs/*.md.
//
// A testable example is a ```bash block holding a single fms command, followed by
// a ```console block holding its exact standard output. Examples of a file run
// in order, in the same data folder.

// example holds a command and its expected output.
type example struct {
	Cmd      string
	Expected string
}

var exampleRE = regexp.MustCompile("(?m)```bash\\n(fms.*?)\\n```\\n\\n```console\\n((.|\\n)*?)```")

// buildFms builds the fms command and returns the path to the executable.
func buildFms(t *testing.T, tmp string) string {
	t.Helper()
	output := filepath.Join(tmp, "fms")
	build := exec.Command("go", "build", "-o", output, "./fms/")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("failed to build fms command: %v\n%s", err, out)
	}
	return output
}

// parseExamples extracts the testable examples of a markdown file.
func parseExamples(t *testing.T, file string) []example {
	t.Helper()
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	var examples []example
	for _, match := range exampleRE.FindAllStringSubmatch(string(content), -1) {
		examples = append(examples, example{Cmd: match[1], Expected: match[2]})
	}
	return examples
}

func TestDocumentationExamples(t *testing.T) {
	files, err := filepath.Glob("docs/*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "README.md")

	fms := buildFms(t, t.TempDir())
	for _, file := range files {
		examples := parseExamples(t, file)
		if len(examples) == 0 {
			continue
		}
		t.Run(file, func(t *testing.T) {
			dir := t.TempDir()
			for _, ex := range examples {
				args := strings.Fields(ex.Cmd)
				command := exec.Command(fms, args[1:]...)
				command.Dir = dir
				command.Env = []string{"PATH=" + os.Getenv("PATH"), "HOME=" + dir}
				output, err := command.Output()
				if err != nil {
					t.Fatalf("%s: %v\n%s", ex.Cmd, err, output)
				}
				if got := string(output); got != ex.Expected {
					t.Errorf("%s:\nexpected output:\n%q\nbut got:\n%q", ex.Cmd, ex.Expected, got)
				}
			}
		})
	}
}
