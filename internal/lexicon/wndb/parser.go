// Package wndb parses Princeton WordNet database files (data.adj, data.adv,
// data.noun, data.verb) into synsets with definitions and sense keys.
// Pure function: directory in, domain structs out.
package wndb

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/heartmarshall/revdict/internal/domain"
)

// DefaultOrder is the order in which data files are read.
var DefaultOrder = []string{"adj", "adv", "noun", "verb"}

// ssTypeNumbers maps synset types to the numbers used in sense keys.
var ssTypeNumbers = map[string]int{
	"n": 1,
	"v": 2,
	"a": 3,
	"r": 4,
	"s": 5,
}

const (
	ssTypeSatellite = "s"
	similarTo       = "&"
	maxLineSize     = 1 << 20
)

// exampleRe matches a quoted usage example inside a gloss.
var exampleRe = regexp.MustCompile(`"[^"]*"`)

// ParseResult holds parsed synsets in file order.
type ParseResult struct {
	Synsets []domain.Synset
	Stats   Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	Files        int
	Synsets      int
	Lemmas       int
	Satellites   int
	LicenseLines int
}

type word struct {
	name  string
	lexID int
}

type pointer struct {
	symbol string
	offset int
}

type record struct {
	offset   int
	lexFile  int
	ssType   string
	words    []word
	pointers []pointer
	gloss    string
}

// Parse reads data.<name> for every name in order from dir and returns all
// synsets: files in the given order, records in file (byte offset) order.
func Parse(dir string, order []string) (ParseResult, error) {
	if len(order) == 0 {
		order = DefaultOrder
	}

	var result ParseResult
	for _, name := range order {
		path := filepath.Join(dir, "data."+name)
		records, licenseLines, err := readFile(path)
		if err != nil {
			return ParseResult{}, err
		}
		result.Stats.Files++
		result.Stats.LicenseLines += licenseLines

		byOffset := make(map[int]*record, len(records))
		for i := range records {
			byOffset[records[i].offset] = &records[i]
		}

		for i := range records {
			synset, err := toSynset(&records[i], byOffset)
			if err != nil {
				return ParseResult{}, fmt.Errorf("%s: %w", path, err)
			}
			if records[i].ssType == ssTypeSatellite {
				result.Stats.Satellites++
			}
			result.Stats.Lemmas += len(synset.Lemmas)
			result.Synsets = append(result.Synsets, synset)
		}
	}

	result.Stats.Synsets = len(result.Synsets)
	return result, nil
}

func readFile(path string) ([]record, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var (
		records      []record
		licenseLines int
		lineNum      int
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}
		// License header lines start with white space.
		if unicode.IsSpace(rune(line[0])) {
			licenseLines++
			continue
		}

		rec, err := parseLine(line)
		if err != nil {
			return nil, 0, fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}

	return records, licenseLines, nil
}

// parseLine parses one data file record:
//
//	offset lex_filenum ss_type w_cnt word lex_id [word lex_id...] p_cnt [ptr...] [frames...] | gloss
func parseLine(line string) (record, error) {
	cols, gloss, found := strings.Cut(strings.TrimSpace(line), "|")
	if !found {
		return record{}, fmt.Errorf("missing gloss separator")
	}
	fields := strings.Fields(cols)
	if len(fields) < 4 {
		return record{}, fmt.Errorf("too few fields (%d)", len(fields))
	}

	var rec record
	var err error

	if rec.offset, err = strconv.Atoi(fields[0]); err != nil {
		return record{}, fmt.Errorf("synset offset %q: %w", fields[0], err)
	}
	if rec.lexFile, err = strconv.Atoi(fields[1]); err != nil {
		return record{}, fmt.Errorf("lex_filenum %q: %w", fields[1], err)
	}
	rec.ssType = fields[2]
	if _, ok := ssTypeNumbers[rec.ssType]; !ok {
		return record{}, fmt.Errorf("unknown ss_type %q", rec.ssType)
	}

	wordCount, err := strconv.ParseInt(fields[3], 16, 32)
	if err != nil {
		return record{}, fmt.Errorf("w_cnt %q: %w", fields[3], err)
	}
	pos := 4
	if len(fields) < pos+2*int(wordCount)+1 {
		return record{}, fmt.Errorf("truncated word list")
	}
	rec.words = make([]word, 0, wordCount)
	for range wordCount {
		lexID, err := strconv.ParseInt(fields[pos+1], 16, 32)
		if err != nil {
			return record{}, fmt.Errorf("lex_id %q: %w", fields[pos+1], err)
		}
		rec.words = append(rec.words, word{name: stripMarker(fields[pos]), lexID: int(lexID)})
		pos += 2
	}

	pointerCount, err := strconv.Atoi(fields[pos])
	if err != nil {
		return record{}, fmt.Errorf("p_cnt %q: %w", fields[pos], err)
	}
	pos++
	if len(fields) < pos+4*pointerCount {
		return record{}, fmt.Errorf("truncated pointer list")
	}
	for range pointerCount {
		target, err := strconv.Atoi(fields[pos+1])
		if err != nil {
			return record{}, fmt.Errorf("pointer offset %q: %w", fields[pos+1], err)
		}
		rec.pointers = append(rec.pointers, pointer{symbol: fields[pos], offset: target})
		pos += 4
	}
	// Remaining fields are verb frames, which are not needed.

	rec.gloss = gloss
	return rec, nil
}

// stripMarker removes an adjective syntactic marker such as "(p)" or "(ip)".
func stripMarker(name string) string {
	if !strings.HasSuffix(name, ")") {
		return name
	}
	if i := strings.IndexByte(name, '('); i >= 0 {
		return name[:i]
	}
	return name
}

// Definition returns the gloss without its quoted usage examples.
func Definition(gloss string) string {
	def := strings.TrimSpace(exampleRe.ReplaceAllString(gloss, ""))
	return strings.Trim(def, "; ")
}

func toSynset(rec *record, byOffset map[int]*record) (domain.Synset, error) {
	headName, headID := "", ""
	if rec.ssType == ssTypeSatellite {
		head, err := satelliteHead(rec, byOffset)
		if err != nil {
			return domain.Synset{}, err
		}
		headName = head.name
		headID = fmt.Sprintf("%02d", head.lexID)
	}

	synset := domain.Synset{
		ID:         fmt.Sprintf("%08d-%s", rec.offset, rec.ssType),
		POS:        rec.ssType,
		Definition: Definition(rec.gloss),
		Lemmas:     make([]domain.Lemma, 0, len(rec.words)),
	}
	for _, w := range rec.words {
		synset.Lemmas = append(synset.Lemmas, domain.Lemma{
			Name:     w.name,
			SenseKey: SenseKey(w.name, rec.ssType, rec.lexFile, w.lexID, headName, headID),
		})
	}
	return synset, nil
}

// satelliteHead returns the first word of the head synset that the first
// similar-to pointer of a satellite points at.
func satelliteHead(rec *record, byOffset map[int]*record) (word, error) {
	for _, p := range rec.pointers {
		if p.symbol != similarTo {
			continue
		}
		head, ok := byOffset[p.offset]
		if !ok {
			return word{}, fmt.Errorf("satellite %08d: head synset %08d not found", rec.offset, p.offset)
		}
		if len(head.words) == 0 {
			return word{}, fmt.Errorf("satellite %08d: head synset %08d has no words", rec.offset, p.offset)
		}
		return head.words[0], nil
	}
	return word{}, fmt.Errorf("satellite %08d: no similar-to pointer", rec.offset)
}

// SenseKey formats a WordNet sense key: lemma%ss_type:lex_filenum:lex_id:head_word:head_id.
func SenseKey(name, ssType string, lexFile, lexID int, headName, headID string) string {
	key := fmt.Sprintf("%s%%%d:%02d:%02d:%s:%s", name, ssTypeNumbers[ssType], lexFile, lexID, headName, headID)
	return strings.ToLower(key)
}
