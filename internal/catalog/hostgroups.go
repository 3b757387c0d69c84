package catalog

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// hostgroupPattern matches the hostgroup_name attribute inside a
// "define hostgroup { }" block.
var hostgroupPattern = regexp.MustCompile(`^\s+hostgroup_name\s+(.*)$`)

// LoadHostGroups returns every hostgroup_name declared in a Nagios hostgroup
// definition file, in file order.
func LoadHostGroups(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hostgroup file: %w", err)
	}
	defer f.Close()

	var groups []string
	scanner := newScanner(f)
	for scanner.Scan() {
		if m := hostgroupPattern.FindStringSubmatch(scanner.Text()); m != nil {
			groups = append(groups, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read hostgroup file: %w", err)
	}

	return groups, nil
}
