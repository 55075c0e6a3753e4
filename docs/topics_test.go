package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// readmeTopics returns the topics listed in readme.md.
func readmeTopics(t *testing.T) []string {
	t.Helper()
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topics []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			topics = append(topics, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}
	return topics
}

func TestTopics(t *testing.T) {
	listed := readmeTopics(t)
	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("failed to get topic %q: %v", topic, err)
		}
	}

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}
	for _, file := range files {
		topic := strings.TrimSuffix(filepath.Base(file), ".md")
		if topic != "readme" && !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() = %v", err)
	}
	if !slices.Equal(all, listed) {
		t.Errorf("GetAllTopics() = %q, readme lists %q", all, listed)
	}
	if _, err := GetTopic("nope"); err == nil {
		t.Errorf("GetTopic(nope): want error")
	}
}

// TestTopicTitles checks that every topic starts with a single level 1 heading.
func TestTopicTitles(t *testing.T) {
	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range append(all, "readme") {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatal(err)
			}
			source := []byte(content)
			root := goldmark.DefaultParser().Parse(text.NewReader(source))

			var titles int
			first := true
			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if !entering || n == root {
					return ast.WalkContinue, nil
				}
				h, ok := n.(*ast.Heading)
				if first && (!ok || h.Level != 1) {
					t.Errorf("topic %q does not start with a level 1 heading", topic)
				}
				first = false
				if ok && h.Level == 1 {
					titles++
				}
				return ast.WalkSkipChildren, nil
			})
			if titles != 1 {
				t.Errorf("topic %q has %d level 1 headings, want 1", topic, titles)
			}
		})
	}
}

func TestGetAllTopicsContent(t *testing.T) {
	content, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# Categories", "# Data file format", "# Schedule"} {
		if !strings.Contains(content, want) {
			t.Errorf("GetTopic(*) does not contain %q", want)
		}
	}
}
