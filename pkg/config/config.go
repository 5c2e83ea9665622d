// Package config parses the "disco.config" properties-style file that
// describes a word space, plus an optional YAML sidecar layered on top.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arnebakke/wordspace/pkg/vector"
)

// CorruptConfigError is returned when a config file cannot be parsed or a
// required field is missing. Fatal at open, per the word space's error
// handling design.
type CorruptConfigError struct {
	Path string
	Err  error
}

func (e *CorruptConfigError) Error() string {
	return fmt.Sprintf("config: corrupt config %q: %v", e.Path, e.Err)
}

func (e *CorruptConfigError) Unwrap() error { return e.Err }

// Config mirrors every field of the original disco.config file format.
type Config struct {
	InputFileFormat string
	Lemma           bool
	LemmaFeatures   bool
	BoundaryMarks   string
	StopwordFile    string
	Stopwords       []string
	MinFreq         int
	MaxFreq         int
	TokenCount      int64
	VocabularySize  int

	NumberFeatureWords   int
	NumberOfSimilarWords int
	NumberOfNgrams       int
	WeightingMethod      string
	MinWeight            float32
	SimilarityMeasure    vector.Measure
	DontCompute2ndOrder  bool

	ExistingCoocFile   string
	ExistingWeightFile string
	DiscoVersion        int

	MinimumWordLength       int
	MaximumWordLength       int
	AllowedCharactersWord   string
	MinimumFeatureLength    int
	MaximumFeatureLength    int
	AllowedCharactersFeature string

	FindMultiTokenWords       bool
	MultiTokenWordsDictionary string
	TokenAnnotatorMap         string
}

// Default returns a Config populated with the documented defaults, the way
// ConfigFile's Java field initializers do.
func Default() Config {
	return Config{
		MinFreq:                  100,
		MaxFreq:                  -1,
		TokenCount:               -1,
		VocabularySize:           -1,
		NumberFeatureWords:       30000,
		NumberOfSimilarWords:     0,
		WeightingMethod:          "lin",
		MinWeight:                0.1,
		SimilarityMeasure:        vector.Kolb,
		DiscoVersion:             2,
		MinimumWordLength:        2,
		MaximumWordLength:        31,
		AllowedCharactersWord:    `\.\-'_`,
		MinimumFeatureLength:     2,
		MaximumFeatureLength:     31,
		AllowedCharactersFeature: `\.\-'_`,
	}
}

// Load reads "disco.config" from dirOrFile (a directory containing it, or
// the file itself), applying defaults for any key that is absent. Unknown
// keys are ignored.
func Load(dirOrFile string) (Config, error) {
	path := dirOrFile
	if info, err := os.Stat(dirOrFile); err == nil && info.IsDir() {
		path = filepath.Join(dirOrFile, "disco.config")
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, &CorruptConfigError{Path: path, Err: err}
	}
	defer f.Close()

	cfg, err := ReadFrom(f)
	if err != nil {
		return Config{}, &CorruptConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// ReadFrom parses the disco.config properties format from r, applying
// defaults for any absent key. Used directly by Load and by densestore's
// binary deserializer, which embeds the same format as one section of its
// blob.
func ReadFrom(r io.Reader) (Config, error) {
	props := map[string]string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		idx := strings.IndexAny(line, "=:")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		props[key] = val
	}
	if err := scanner.Err(); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := applyProps(&cfg, props); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyProps(cfg *Config, props map[string]string) error {
	get := func(key string) (string, bool) {
		v, ok := props[key]
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}
	var firstErr error
	setErr := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if v, ok := get("inputFileFormat"); ok {
		cfg.InputFileFormat = v
		if strings.EqualFold(v, "lemmatized") || strings.EqualFold(v, "lemmatised") {
			cfg.LemmaFeatures = true
		}
	}
	if v, ok := get("lemma"); ok {
		cfg.Lemma = v == "true"
	}
	if v, ok := get("lemmaFeatures"); ok {
		cfg.LemmaFeatures = v == "true"
	}
	if v, ok := get("boundaryMarks"); ok {
		cfg.BoundaryMarks = v
	}
	if v, ok := get("stopwordFile"); ok {
		cfg.StopwordFile = v
	}
	if v, ok := get("stopwords"); ok {
		cfg.Stopwords = strings.Fields(v)
	}
	if v, ok := get("minFreq"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			setErr(err)
		}
		cfg.MinFreq = n
	}
	if v, ok := get("maxFreq"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			setErr(err)
		}
		cfg.MaxFreq = n
	}
	if v, ok := get("tokencount"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			setErr(err)
		}
		cfg.TokenCount = n
	}
	if v, ok := get("vocabularySize"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			setErr(err)
		}
		cfg.VocabularySize = n
	}
	if v, ok := get("numberFeatureWords"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			setErr(err)
		}
		cfg.NumberFeatureWords = n
	}
	if v, ok := get("numberOfSimilarWords"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			setErr(err)
		}
		cfg.NumberOfSimilarWords = n
	}
	if v, ok := get("numberOfNgrams"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			setErr(err)
		}
		cfg.NumberOfNgrams = n
	}
	if v, ok := get("weightingMethod"); ok {
		cfg.WeightingMethod = v
	}
	if v, ok := get("minWeight"); ok {
		n, err := strconv.ParseFloat(v, 32)
		if err != nil {
			setErr(err)
		}
		cfg.MinWeight = float32(n)
	}
	if v, ok := get("similarityMeasure"); ok {
		cfg.SimilarityMeasure = vector.ParseMeasure(v)
	}
	if v, ok := get("dontCompute2ndOrder"); ok {
		cfg.DontCompute2ndOrder = v == "true"
	}
	if v, ok := get("existingCoocFile"); ok {
		cfg.ExistingCoocFile = v
	}
	if v, ok := get("existingWeightFile"); ok {
		cfg.ExistingWeightFile = v
	}
	if v, ok := get("discoVersion"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			setErr(err)
		}
		cfg.DiscoVersion = n
	}
	if v, ok := get("minimumWordLength"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			setErr(err)
		}
		cfg.MinimumWordLength = n
	}
	if v, ok := get("maximumWordLength"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			setErr(err)
		}
		cfg.MaximumWordLength = n
	}
	if v, ok := get("allowedCharactersWord"); ok {
		cfg.AllowedCharactersWord = v
	}
	if v, ok := get("minimumFeatureLength"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			setErr(err)
		}
		cfg.MinimumFeatureLength = n
	}
	if v, ok := get("maximumFeatureLength"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			setErr(err)
		}
		cfg.MaximumFeatureLength = n
	}
	if v, ok := get("allowedCharactersFeature"); ok {
		cfg.AllowedCharactersFeature = v
	}
	if v, ok := get("findMultiTokenWords"); ok {
		cfg.FindMultiTokenWords = v == "true"
	}
	if v, ok := get("multiTokenWordsDictionary"); ok {
		cfg.MultiTokenWordsDictionary = v
	}
	if v, ok := get("tokenAnnotatorMap"); ok {
		cfg.TokenAnnotatorMap = v
	}

	return firstErr
}

// Write serializes cfg back to "disco.config" in dirOrFile, mirroring
// ConfigFile.write for round-trip tests and tooling that builds a config
// programmatically.
func (cfg Config) Write(dirOrFile string) error {
	path := dirOrFile
	if info, err := os.Stat(dirOrFile); err == nil && info.IsDir() {
		path = filepath.Join(dirOrFile, "disco.config")
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := cfg.WriteTo(w); err != nil {
		return err
	}
	return w.Flush()
}

// WriteTo serializes cfg in the disco.config properties format to w,
// without touching the filesystem. Write uses this for the on-disk file;
// densestore's binary serializer uses it to embed the config record as
// one section of its blob, per spec.md §6.
func (cfg Config) WriteTo(w io.Writer) error {
	fmt.Fprintf(w, "inputFileFormat=%s\n", cfg.InputFileFormat)
	fmt.Fprintf(w, "lemma=%t\n", cfg.Lemma)
	fmt.Fprintf(w, "lemmaFeatures=%t\n", cfg.LemmaFeatures)
	fmt.Fprintf(w, "boundaryMarks=%s\n", cfg.BoundaryMarks)
	fmt.Fprintf(w, "stopwordFile=%s\n", cfg.StopwordFile)
	fmt.Fprintf(w, "stopwords=%s\n", strings.Join(cfg.Stopwords, " "))
	fmt.Fprintf(w, "minFreq=%d\n", cfg.MinFreq)
	fmt.Fprintf(w, "maxFreq=%d\n", cfg.MaxFreq)
	fmt.Fprintf(w, "tokencount=%d\n", cfg.TokenCount)
	fmt.Fprintf(w, "vocabularySize=%d\n", cfg.VocabularySize)
	fmt.Fprintf(w, "numberFeatureWords=%d\n", cfg.NumberFeatureWords)
	fmt.Fprintf(w, "numberOfSimilarWords=%d\n", cfg.NumberOfSimilarWords)
	fmt.Fprintf(w, "numberOfNgrams=%d\n", cfg.NumberOfNgrams)
	fmt.Fprintf(w, "weightingMethod=%s\n", cfg.WeightingMethod)
	fmt.Fprintf(w, "minWeight=%g\n", cfg.MinWeight)
	fmt.Fprintf(w, "similarityMeasure=%s\n", cfg.SimilarityMeasure)
	fmt.Fprintf(w, "dontCompute2ndOrder=%t\n", cfg.DontCompute2ndOrder)
	fmt.Fprintf(w, "existingCoocFile=%s\n", cfg.ExistingCoocFile)
	fmt.Fprintf(w, "existingWeightFile=%s\n", cfg.ExistingWeightFile)
	fmt.Fprintf(w, "discoVersion=%d\n", cfg.DiscoVersion)
	fmt.Fprintf(w, "minimumWordLength=%d\n", cfg.MinimumWordLength)
	fmt.Fprintf(w, "maximumWordLength=%d\n", cfg.MaximumWordLength)
	fmt.Fprintf(w, "allowedCharactersWord=%s\n", cfg.AllowedCharactersWord)
	fmt.Fprintf(w, "minimumFeatureLength=%d\n", cfg.MinimumFeatureLength)
	fmt.Fprintf(w, "maximumFeatureLength=%d\n", cfg.MaximumFeatureLength)
	fmt.Fprintf(w, "allowedCharactersFeature=%s\n", cfg.AllowedCharactersFeature)
	fmt.Fprintf(w, "findMultiTokenWords=%t\n", cfg.FindMultiTokenWords)
	fmt.Fprintf(w, "multiTokenWordsDictionary=%s\n", cfg.MultiTokenWordsDictionary)
	fmt.Fprintf(w, "tokenAnnotatorMap=%s\n", cfg.TokenAnnotatorMap)

	return nil
}
