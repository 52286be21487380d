// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package bcvm

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Fantom-foundation/svm/go/svm/isa"
	"github.com/jedib0t/go-pretty/v6/table"
)

// statisticRunner is a runner that collects statistics about the instruction
// sequence of the executed code.
type statisticRunner struct {
	mutex sync.Mutex
	stats *statistics
}

func (s *statisticRunner) run(c *context) (status, error) {
	stats := statsCollector{stats: newStatistics()}
	status := statusRunning
	var executionError error
	for status == statusRunning {
		if c.pc < len(c.code) && c.steps < c.maxSteps {
			stats.nextOp(c.code[c.pc].opcode)
		}
		status, executionError = step(c)
		if executionError != nil {
			break
		}
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.stats == nil {
		s.stats = newStatistics()
	}
	s.stats.insert(stats.stats)
	return status, executionError
}

// getSummary returns a summary of the collected statistics in a human-readable
// format.
func (s *statisticRunner) getSummary() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.stats == nil {
		s.stats = newStatistics()
	}
	return s.stats.print()
}

// reset clears the collected statistics.
func (s *statisticRunner) reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stats = newStatistics()
}

// statistics contains the instruction sequence statistics of a code execution.
// It counts the number of times each instruction is executed, as well as the
// number of times each pair of consecutive instructions is executed. Failing
// instructions are counted, since they were started.
type statistics struct {
	count       uint64
	singleCount map[uint64]uint64
	pairCount   map[uint64]uint64
}

func newStatistics() *statistics {
	return &statistics{
		singleCount: map[uint64]uint64{},
		pairCount:   map[uint64]uint64{},
	}
}

// insert adds the instruction counts of the given statistics to this instance.
func (s *statistics) insert(src *statistics) {
	s.count += src.count
	for k, v := range src.singleCount {
		s.singleCount[k] += v
	}
	for k, v := range src.pairCount {
		s.pairCount[k] += v
	}
}

// print returns a human-readable summary of the collected statistics.
func (s *statistics) print() string {

	type entry struct {
		value uint64
		count uint64
	}

	getTopN := func(data map[uint64]uint64, n int) []entry {
		list := make([]entry, 0, len(data))
		for k, c := range data {
			list = append(list, entry{k, c})
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].count != list[j].count {
				return list[i].count > list[j].count
			}
			return list[i].value < list[j].value
		})
		if len(list) < n {
			return list
		}
		return list[0:n]
	}

	share := func(count uint64) string {
		return fmt.Sprintf("%.2f%%", float32(count*100)/float32(s.count))
	}

	singles := table.NewWriter()
	singles.SetTitle("Singles")
	singles.AppendHeader(table.Row{"Instruction", "Count", "Share"})
	for _, e := range getTopN(s.singleCount, 5) {
		singles.AppendRow(table.Row{isa.OpCode(e.value), e.count, share(e.count)})
	}

	pairs := table.NewWriter()
	pairs.SetTitle("Pairs")
	pairs.AppendHeader(table.Row{"First", "Second", "Count", "Share"})
	for _, e := range getTopN(s.pairCount, 5) {
		pairs.AppendRow(table.Row{isa.OpCode(e.value >> 8), isa.OpCode(e.value & 0xFF), e.count, share(e.count)})
	}

	builder := strings.Builder{}
	builder.WriteString("\n----- Statistics ------\n")
	builder.WriteString(fmt.Sprintf("\nSteps: %d\n\n", s.count))
	builder.WriteString(singles.Render())
	builder.WriteString("\n\n")
	builder.WriteString(pairs.Render())
	builder.WriteString("\n")
	return builder.String()
}

// statsCollector is a helper struct that keeps track of the recent history of
// instructions executed by the VM to collect instruction sequence statistics.
type statsCollector struct {
	stats *statistics
	last  uint64
}

func (s *statsCollector) nextOp(op isa.OpCode) {
	cur := uint64(op)
	s.stats.count++
	s.stats.singleCount[cur]++
	if s.stats.count > 1 {
		s.stats.pairCount[s.last<<8|cur]++
	}
	s.last = cur
}
