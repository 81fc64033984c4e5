package dataset

import (
	"bufio"
	"fmt"
	"os"

	"github.com/heartmarshall/revdict/internal/domain"
)

const maxFilterLineSize = 1 << 20

// LoadExclusionList reads a newline-delimited file into an exclusion list.
// Lines are kept verbatim apart from a trailing "\r"; a final newline does
// not add an empty entry.
func LoadExclusionList(path string) (domain.ExclusionList, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.ExclusionList{}, fmt.Errorf("exclusion list: %w: %w", domain.ErrConfiguration, err)
	}
	defer f.Close()

	var items []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFilterLineSize)
	for scanner.Scan() {
		items = append(items, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return domain.ExclusionList{}, fmt.Errorf("exclusion list %s: %w: %w", path, domain.ErrConfiguration, err)
	}

	return domain.NewExclusionList(items...), nil
}
