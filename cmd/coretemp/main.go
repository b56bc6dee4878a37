// Command coretemp estimates core body temperature from a stream of heart rate samples.
//
// It reads one sample per line from a file or stdin. A line holds either a heart rate
// in beats per minute or comma separated fields whose last field is the heart rate,
// e.g. "2024-06-01T12:00:00Z,92". For every sample it writes a CSV record
// hr,ct,variance,status to stdout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	coretemp "github.com/milosgajdos/go-coretemp"
	"github.com/milosgajdos/go-coretemp/config"
	"github.com/milosgajdos/go-coretemp/internal/logger"
	"github.com/milosgajdos/go-coretemp/kalman/ekf"
	"github.com/milosgajdos/go-coretemp/noise"
	"github.com/milosgajdos/go-coretemp/smooth/rts"
	"go.uber.org/zap"
)

var (
	configPath string
	inputPath  string
	smoothed   bool
)

func init() {
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&inputPath, "input", "", "heart rate input file (default stdin)")
	flag.BoolVar(&smoothed, "smooth", false, "append RTS smoothed core temperature column")
}

type record struct {
	hr     float64
	est    coretemp.Estimate
	status coretemp.Status
}

func main() {
	flag.Parse()

	c, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(c.LogLevel)

	in, err := openInput(inputPath)
	if err != nil {
		log.Error("failed to open input", zap.String("path", inputPath), zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}

	err = execute(c.Estimator, in, os.Stdout, smoothed, log)
	in.Close()
	if err != nil {
		log.Error("coretemp failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}

	_ = log.Sync()
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(path)
}

// execute estimates core temperature for samples read from r and writes the records to w.
// Records written before a failure are flushed to w.
func execute(c ekf.Config, r io.Reader, w io.Writer, smooth bool, log *zap.Logger) error {
	f, err := ekf.NewWithConfig(c, ekf.WithLogger(log.Named("ekf")))
	if err != nil {
		return fmt.Errorf("failed to create estimator: %w", err)
	}

	out := bufio.NewWriter(w)
	defer out.Flush()

	records, err := run(f, r, out, !smooth, log)
	if err != nil {
		return fmt.Errorf("failed to process input: %w", err)
	}

	if smooth {
		if err := writeSmoothed(out, records, c.ProcessNoise); err != nil {
			return fmt.Errorf("failed to smooth estimates: %w", err)
		}
	}

	return out.Flush()
}

// run feeds f with heart rate samples read from r.
// If stream is true every estimate is written to w as soon as it's computed.
func run(f *ekf.EKF, r io.Reader, w io.Writer, stream bool, log *zap.Logger) ([]record, error) {
	var records []record

	if stream {
		fmt.Fprintln(w, "hr,ct,variance,status")
	}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		hr, ok, err := parseSample(scanner.Text())
		if err != nil {
			log.Warn("skipping malformed sample", zap.Int("line", line), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}

		_, status := f.Update(hr)
		if !status.OK() {
			log.Info("observation rejected", zap.Int("line", line), zap.Float64("hr", hr), zap.Stringer("status", status))
		}

		rec := record{hr: hr, est: f.Estimate(), status: status}
		if stream {
			writeRecord(w, rec)
			continue
		}
		records = append(records, rec)
	}

	return records, scanner.Err()
}

// parseSample parses heart rate from a single input line.
// It returns false for blank lines and comments.
func parseSample(line string) (float64, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return 0, false, nil
	}

	fields := strings.Split(line, ",")
	hr, err := strconv.ParseFloat(strings.TrimSpace(fields[len(fields)-1]), 64)
	if err != nil {
		return 0, false, err
	}

	return hr, true, nil
}

func writeRecord(w io.Writer, rec record) {
	fmt.Fprintf(w, "%g,%.4f,%.6g,%s\n", rec.hr, rec.est.CT(), rec.est.Variance(), rec.status)
}

// writeSmoothed smooths the estimates of accepted samples and writes all records
// with an extra smoothed column; rejected samples carry the previous smoothed value.
func writeSmoothed(w io.Writer, records []record, processNoise float64) error {
	fmt.Fprintln(w, "hr,ct,variance,status,smoothed")

	var est []coretemp.Estimate
	for _, rec := range records {
		if rec.status.OK() {
			est = append(est, rec.est)
		}
	}

	if len(est) == 0 {
		for _, rec := range records {
			fmt.Fprintf(w, "%g,%.4f,%.6g,%s,\n", rec.hr, rec.est.CT(), rec.est.Variance(), rec.status)
		}
		return nil
	}

	q, err := noise.NewGaussian(0, processNoise)
	if err != nil {
		return err
	}

	s, err := rts.New(q)
	if err != nil {
		return err
	}

	sx, err := s.Smooth(est)
	if err != nil {
		return err
	}

	i := 0
	last := sx[0].CT()
	for _, rec := range records {
		if rec.status.OK() {
			last = sx[i].CT()
			i++
		}
		fmt.Fprintf(w, "%g,%.4f,%.6g,%s,%.4f\n", rec.hr, rec.est.CT(), rec.est.Variance(), rec.status, last)
	}

	return nil
}
