// Package completion supplies shell-completion candidates for the port argument.
package completion

import (
	"sort"
	"strconv"
	"strings"
)

// ListeningPorts returns the TCP ports currently in LISTEN state that start
// with prefix, as sorted decimal strings.
func ListeningPorts(prefix string) []string {
	var out []string
	for _, p := range getListeningPorts() {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return out
}

// uniqueSortedInts returns a sorted slice of ints as strings with duplicates removed
func uniqueSortedInts(items []int) []string {
	seen := make(map[int]bool)
	var nums []int
	for _, item := range items {
		if item > 0 && !seen[item] {
			seen[item] = true
			nums = append(nums, item)
		}
	}
	sort.Ints(nums)
	result := make([]string, len(nums))
	for i, n := range nums {
		result[i] = strconv.Itoa(n)
	}
	return result
}

// portOf extracts the port from the last ":" of an address like *:8080,
// [::1]:3000 or 127.0.0.1:5432.
func portOf(addr string) int {
	idx := strings.LastIndex(addr, ":")
	if idx == -1 {
		return 0
	}
	port, err := strconv.Atoi(addr[idx+1:])
	if err != nil {
		return 0
	}
	return port
}
