//go:build linux
// +build linux

// File: affinity/numa_linux.go
// Author: momentics <momentics@gmail.com>
//
// Pure-Go NUMA topology query via /sys/devices/system/node (no libnuma
// dependency for a query this cheap to do by reading sysfs); only the
// thread-pinning call in affinity_linux.go uses cgo.

package affinity

import (
	"os"
	"path/filepath"
	"regexp"
)

var nodeDirPattern = regexp.MustCompile(`^node\d+$`)

func platformNUMANodes() int {
	entries, err := os.ReadDir("/sys/devices/system/node")
	if err != nil {
		return 1
	}
	count := 0
	for _, e := range entries {
		if e.IsDir() && nodeDirPattern.MatchString(e.Name()) {
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return count
}

func platformPreferredCPUID(numaNode int) int {
	cpuList, err := os.ReadFile(filepath.Join("/sys/devices/system/node", nodeName(numaNode), "cpulist"))
	if err != nil {
		return 0
	}
	// cpulist is a comma/range list like "0-3,8-11"; take the first id.
	s := string(cpuList)
	for i, c := range s {
		if c == ',' || c == '-' {
			s = s[:i]
			break
		}
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func nodeName(numaNode int) string {
	return "node" + itoa(numaNode)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
