// Package extractor drives the SDP export pipeline: load and validate the
// container, create the output directory, then locate, decode and write every
// entry. Container-level problems abort the run; entry-level problems are
// logged and the entry is skipped.
package extractor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/drgolem/sdptools/pkg/sdp"
	"github.com/drgolem/sdptools/pkg/transform"
	"github.com/drgolem/sdptools/pkg/wavfile"
)

// ErrOutputDir reports that the output directory could not be created.
var ErrOutputDir = errors.New("failed to create output dir")

// Options configures a run.
type Options struct {
	OutputDir    string       // defaults to DefaultOutputDir(input)
	Jobs         int          // entries processed concurrently; <= 1 means sequential
	ResampleRate int          // 0 keeps each record's own sample rate
	Mono         bool         // average stereo clips down to one channel
	Logger       *slog.Logger // defaults to slog.Default()
}

// Result is the outcome of one entry.
type Result struct {
	Index int
	Name  string
	Path  string
	Mode  string // "decoded" or "pcm"
	Err   error
}

// Report summarizes a run.
type Report struct {
	OutputDir string
	Found     int
	Exported  int
	Skipped   int
	Results   []Result
}

// DefaultOutputDir returns the input file name without directory and extension.
func DefaultOutputDir(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputName returns the file name used for entry index: the record name with
// path separators neutralised, or wave_<index> when nothing usable is left.
func OutputName(name string, index int) string {
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, name)

	if name == "" || name == "." || name == ".." {
		return "wave_" + strconv.Itoa(index)
	}
	return name
}

// Run exports every entry of the container at input.
// The returned error is non-nil only for fatal, run-aborting conditions.
func Run(input string, opts Options) (Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = DefaultOutputDir(input)
	}
	report := Report{OutputDir: outDir}

	container, err := sdp.ReadFile(input)
	if err != nil {
		return report, err
	}
	report.Found = len(container.Records)
	logger.Info("Found entries", "count", report.Found, "file", input)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return report, fmt.Errorf("%w: %w", ErrOutputDir, err)
	}

	report.Results = make([]Result, report.Found)
	process := func(i int) {
		res := exportEntry(container, i, outDir, opts)
		if res.Err != nil {
			logger.Error("Skipping entry", "entry", i, "name", res.Name, "error", res.Err)
		} else {
			logger.Info("Exported", "entry", i, "mode", res.Mode, "path", res.Path)
		}
		report.Results[i] = res
	}

	jobs := opts.Jobs
	if jobs <= 1 {
		for i := range report.Results {
			process(i)
		}
	} else {
		groups := make(chan []int)
		var wg sync.WaitGroup
		for w := 0; w < jobs; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for group := range groups {
					for _, i := range group {
						process(i)
					}
				}
			}()
		}
		for _, group := range groupByOutput(container) {
			groups <- group
		}
		close(groups)
		wg.Wait()
	}

	for _, res := range report.Results {
		if res.Err != nil {
			report.Skipped++
		} else {
			report.Exported++
		}
	}

	logger.Info("Done", "exported", report.Exported, "skipped", report.Skipped, "output_dir", outDir)
	return report, nil
}

// groupByOutput partitions entry indices by destination file. Entries sharing
// a file stay in index order within their group so one worker writes them in
// turn and the last one wins, as in a sequential run. Names are compared
// case-insensitively to cover case-folding filesystems.
func groupByOutput(c *sdp.Container) [][]int {
	var groups [][]int
	byName := make(map[string]int)
	for i := range c.Records {
		key := strings.ToLower(OutputName(c.Records[i].Name(), i))
		g, ok := byName[key]
		if !ok {
			g = len(groups)
			byName[key] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

// exportEntry runs locate -> decode -> post-process -> write for one entry.
// It only reads the shared container.
func exportEntry(c *sdp.Container, i int, outDir string, opts Options) Result {
	rec := &c.Records[i]
	res := Result{
		Index: i,
		Name:  OutputName(rec.Name(), i),
		Mode:  "pcm",
	}
	if rec.Compressed() {
		res.Mode = "decoded"
	}
	res.Path = filepath.Join(outDir, res.Name+".wav")

	clip, err := c.Clip(i)
	if err != nil {
		res.Err = err
		return res
	}

	samples, channels, rate := clip.Samples, clip.Channels, clip.SampleRate
	if opts.Mono && channels > 1 {
		samples = transform.Mono(samples, channels)
		channels = 1
	}
	if opts.ResampleRate > 0 && uint32(opts.ResampleRate) != rate {
		samples, err = transform.Resample(samples, int(rate), opts.ResampleRate, channels)
		if err != nil {
			res.Err = err
			return res
		}
		rate = uint32(opts.ResampleRate)
	}

	if err := wavfile.WriteFile(res.Path, samples, channels, rate); err != nil {
		res.Err = err
	}
	return res
}
