// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation_test

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/fqrename/pkg/config"
	"github.com/walteh/fqrename/pkg/log"
	"github.com/walteh/fqrename/pkg/operation"
	"github.com/walteh/fqrename/pkg/rewrite"
	"github.com/walteh/fqrename/pkg/status"
	"github.com/walteh/fqrename/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🧪 failingFS fails reads of one base name and delegates everything else to the OS
type failingFS struct {
	rewrite.OSFileSystem
	failName string
}

func (f failingFS) ReadFile(name string) ([]byte, error) {
	if filepath.Base(name) == f.failName {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return f.OSFileSystem.ReadFile(name)
}

// 🧪 mockWalker is a testify mock of operation.TreeWalker
type mockWalker struct {
	mock.Mock
}

func (m *mockWalker) Walk(ctx context.Context, root string, v walk.Visitor) error {
	return m.Called(ctx, root, v).Error(0)
}

type env struct {
	ctx     context.Context
	root    string
	console *bytes.Buffer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return &env{
		ctx:     logger.WithContext(context.Background()),
		root:    t.TempDir(),
		console: &bytes.Buffer{},
	}
}

func (e *env) write(t *testing.T, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(e.root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func (e *env) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func (e *env) lines() []string {
	out := strings.TrimSpace(e.console.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

type runOpts struct {
	fs     rewrite.FileSystem
	dryRun bool
	jobs   int
}

func (e *env) run(t *testing.T, o runOpts) *status.Summary {
	t.Helper()
	cfg := config.Default()

	walker, err := walk.New(walk.Options{Extensions: cfg.Extensions, Exclude: cfg.Exclude})
	require.NoError(t, err)

	rewriter, err := rewrite.New(rewrite.Options{Table: cfg.Table(), FS: o.fs, DryRun: o.dryRun})
	require.NoError(t, err)

	runner, err := operation.NewRunner(operation.Options{
		Root:     e.root,
		Walker:   walker,
		Rewriter: rewriter,
		Reporter: log.New(e.console, *zerolog.Ctx(e.ctx)),
		Jobs:     o.jobs,
	})
	require.NoError(t, err)

	summary, err := runner.Run(e.ctx)
	require.NoError(t, err)
	return summary
}

func TestRunConcreteScenario(t *testing.T) {
	e := newEnv(t)
	e.write(t, map[string]string{
		"a.kt":  "import com.hereliesaz.graffitixr.UiState\n",
		"b.xml": "<x type=\"com.hereliesaz.graffitixr.domain.model.Foo\"/>\n",
	})

	summary := e.run(t, runOpts{})

	assert.Equal(t, "import com.hereliesaz.graffitixr.common.model.UiState\n", e.read(t, "a.kt"))
	assert.Equal(t, "<x type=\"com.hereliesaz.graffitixr.common.model.Foo\"/>\n", e.read(t, "b.xml"))
	assert.Equal(t, 2, summary.Count(status.StatusUpdated))
	assert.ElementsMatch(t, []string{
		"Updating " + filepath.Join(e.root, "a.kt"),
		"Updating " + filepath.Join(e.root, "b.xml"),
	}, e.lines())
}

func TestRunIsIdempotent(t *testing.T) {
	e := newEnv(t)
	e.write(t, map[string]string{
		"app/src/main/Main.kt":     "import com.hereliesaz.graffitixr.feature.ar.ArState\nimport com.hereliesaz.graffitixr.UiState\n",
		"app/src/main/Editor.java": "import com.hereliesaz.graffitixr.feature.editor.RotationAxis;\n",
	})

	first := e.run(t, runOpts{})
	require.Equal(t, 2, first.Count(status.StatusUpdated))

	e.console.Reset()
	second := e.run(t, runOpts{})

	assert.Equal(t, 0, second.Count(status.StatusUpdated))
	assert.Equal(t, 2, second.Count(status.StatusUnchanged))
	assert.Empty(t, e.lines())
}

func TestRunExhaustiveSubstitution(t *testing.T) {
	e := newEnv(t)
	var all strings.Builder
	for _, r := range config.DefaultReplacements() {
		fmt.Fprintf(&all, "import %s.Something\nval x = %s\n", r.Old, r.Old)
	}
	e.write(t, map[string]string{
		"One.kt":        all.String(),
		"Two.java":      all.String(),
		"res/three.xml": all.String(),
	})

	e.run(t, runOpts{})

	for _, rel := range []string{"One.kt", "Two.java", "res/three.xml"} {
		content := e.read(t, rel)
		for _, r := range config.DefaultReplacements() {
			assert.NotContains(t, content, r.Old, "%s still contains %s", rel, r.Old)
		}
	}
}

func TestRunFilters(t *testing.T) {
	e := newEnv(t)
	old := "import com.hereliesaz.graffitixr.UiState\n"
	e.write(t, map[string]string{
		"notes.md":                  old,
		"build.gradle.kts":          old,
		"build/generated/Gen.kt":    old,
		"app/build/tmp/Gen.java":    old,
		".git/COMMIT_EDITMSG.xml":   old,
		"feature/ar/src/ArState.kt": old,
	})

	summary := e.run(t, runOpts{})

	for _, rel := range []string{"notes.md", "build.gradle.kts", "build/generated/Gen.kt", "app/build/tmp/Gen.java", ".git/COMMIT_EDITMSG.xml"} {
		assert.Equal(t, old, e.read(t, rel), "%s must be left alone", rel)
	}
	assert.Equal(t, "import com.hereliesaz.graffitixr.common.model.UiState\n", e.read(t, "feature/ar/src/ArState.kt"))
	assert.Equal(t, 1, summary.Visited())
}

func TestRunUnmodifiedFilesUntouched(t *testing.T) {
	e := newEnv(t)
	e.write(t, map[string]string{
		"Clean.kt":   "package clean\n",
		"Dirty.kt":   "import com.hereliesaz.graffitixr.UiState\n",
		"layout.xml": "<LinearLayout/>\n",
	})
	past := time.Now().Add(-48 * time.Hour).Truncate(time.Second)
	for _, rel := range []string{"Clean.kt", "layout.xml"} {
		require.NoError(t, os.Chtimes(filepath.Join(e.root, rel), past, past))
	}

	e.run(t, runOpts{})

	for _, rel := range []string{"Clean.kt", "layout.xml"} {
		info, err := os.Stat(filepath.Join(e.root, rel))
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(past), "%s was rewritten", rel)
	}
}

func TestRunErrorIsolation(t *testing.T) {
	e := newEnv(t)
	old := "import com.hereliesaz.graffitixr.UiState\n"
	files := map[string]string{"Locked.kt": old}
	for i := 0; i < 5; i++ {
		files[fmt.Sprintf("pkg%d/File%d.kt", i, i)] = old
	}
	e.write(t, files)

	for _, jobs := range []int{1, 4} {
		t.Run(fmt.Sprintf("jobs_%d", jobs), func(t *testing.T) {
			summary := e.run(t, runOpts{fs: failingFS{failName: "Locked.kt"}, jobs: jobs})

			failures := summary.Failures()
			require.Len(t, failures, 1)
			assert.Equal(t, filepath.Join(e.root, "Locked.kt"), failures[0].Path)
			assert.ErrorIs(t, failures[0].Err, status.ErrRead)
			assert.ErrorIs(t, failures[0].Err, fs.ErrPermission)

			errorLines := 0
			for _, line := range e.lines() {
				if strings.HasPrefix(line, "Error processing ") {
					errorLines++
				}
			}
			assert.Equal(t, 1, errorLines)
			assert.Equal(t, old, e.read(t, "Locked.kt"))
			e.console.Reset()
		})
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, "import com.hereliesaz.graffitixr.common.model.UiState\n", e.read(t, fmt.Sprintf("pkg%d/File%d.kt", i, i)))
	}
}

func TestRunUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	e := newEnv(t)
	e.write(t, map[string]string{
		"Locked.kt": "import com.hereliesaz.graffitixr.UiState\n",
		"Open.kt":   "import com.hereliesaz.graffitixr.UiState\n",
	})
	locked := filepath.Join(e.root, "Locked.kt")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o644) })

	summary := e.run(t, runOpts{})

	assert.Equal(t, 1, summary.Count(status.StatusUpdated))
	assert.Equal(t, 1, summary.Count(status.StatusFailed))
	assert.Equal(t, "import com.hereliesaz.graffitixr.common.model.UiState\n", e.read(t, "Open.kt"))
}

func TestRunDryRun(t *testing.T) {
	e := newEnv(t)
	old := "import com.hereliesaz.graffitixr.data.LoadedProject\n"
	e.write(t, map[string]string{"Project.kt": old})

	summary := e.run(t, runOpts{dryRun: true})

	assert.Equal(t, old, e.read(t, "Project.kt"))
	assert.Equal(t, 1, summary.Count(status.StatusWouldUpdate))
	lines := e.lines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "Would update "+filepath.Join(e.root, "Project.kt"), lines[0])
	assert.Contains(t, e.console.String(), "+import com.hereliesaz.graffitixr.common.model.LoadedProject")
}

func TestRunConcurrentMatchesSequential(t *testing.T) {
	files := map[string]string{}
	for i := 0; i < 40; i++ {
		content := "package p\n"
		if i%3 == 0 {
			content += "import com.hereliesaz.graffitixr.domain.model.Thing\n"
		}
		files[fmt.Sprintf("m%02d/F%02d.kt", i%7, i)] = content
	}

	seq := newEnv(t)
	seq.write(t, files)
	seqSummary := seq.run(t, runOpts{})

	par := newEnv(t)
	par.write(t, files)
	parSummary := par.run(t, runOpts{jobs: 8})

	assert.Equal(t, seqSummary.Count(status.StatusUpdated), parSummary.Count(status.StatusUpdated))
	assert.Equal(t, seqSummary.Visited(), parSummary.Visited())
	for rel := range files {
		assert.Equal(t, seq.read(t, rel), par.read(t, rel))
	}
	for i := 1; i < len(parSummary.Results); i++ {
		assert.Less(t, parSummary.Results[i-1].Path, parSummary.Results[i].Path, "summary must be sorted")
	}
}

func TestRunWalkFailure(t *testing.T) {
	e := newEnv(t)
	boom := errors.New("root vanished")

	w := &mockWalker{}
	w.On("Walk", mock.Anything, "some/root", mock.Anything).Return(boom)

	rewriter, err := rewrite.New(rewrite.Options{Table: config.DefaultTable()})
	require.NoError(t, err)

	runner, err := operation.NewRunner(operation.Options{Root: "some/root", Walker: w, Rewriter: rewriter})
	require.NoError(t, err)

	summary, err := runner.Run(e.ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.Visited())
	w.AssertExpectations(t)
}

func TestRunMissingRoot(t *testing.T) {
	e := newEnv(t)

	walker, err := walk.New(walk.Options{Extensions: config.DefaultExtensions()})
	require.NoError(t, err)
	rewriter, err := rewrite.New(rewrite.Options{Table: config.DefaultTable()})
	require.NoError(t, err)

	runner, err := operation.NewRunner(operation.Options{
		Root:     filepath.Join(e.root, "does-not-exist"),
		Walker:   walker,
		Rewriter: rewriter,
	})
	require.NoError(t, err)

	_, err = runner.Run(e.ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestNewRunnerValidation(t *testing.T) {
	rewriter, err := rewrite.New(rewrite.Options{Table: config.DefaultTable()})
	require.NoError(t, err)

	_, err = operation.NewRunner(operation.Options{Rewriter: rewriter})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "walker is required")

	_, err = operation.NewRunner(operation.Options{Walker: &mockWalker{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rewriter is required")
}

func TestRunDefaultsRootToWorkingDirectory(t *testing.T) {
	w := &mockWalker{}
	w.On("Walk", mock.Anything, ".", mock.Anything).Return(nil)

	rewriter, err := rewrite.New(rewrite.Options{Table: config.DefaultTable()})
	require.NoError(t, err)

	runner, err := operation.NewRunner(operation.Options{Walker: w, Rewriter: rewriter})
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	require.NoError(t, err)
	w.AssertExpectations(t)
}
