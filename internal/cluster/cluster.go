// Package cluster is the Cluster Builder (§4.7): it groups classes
// that share a qualified teacher into connected components, then
// rebalances those components against MAX_CLUSTER_SIZE/MIN_CLUSTER_SIZE
// so the Decomposition Orchestrator can solve each cluster as an
// independent sub-problem. Grounded on the original source's
// ClassClusterBuilder (decomposition/cluster_builder.py): same
// graph-by-shared-teacher construction, same ordered-list bisection for
// splitting oversized clusters, same ascending-size merge for
// undersized ones.
package cluster

import (
	"sort"

	"github.com/maktab-edu/timetable-solver/internal/model"
)

const (
	// MaxClusterSize is the upper bound on requests per cluster before
	// it is split.
	MaxClusterSize = 150
	// MinClusterSize is the lower bound on requests per cluster before
	// it is merged with a neighbor.
	MinClusterSize = 30
)

// Cluster is one group of classes that can be solved as an independent
// sub-problem.
type Cluster struct {
	ID          int
	ClassIDs    []string
	NumRequests int
	TeacherIDs  []string
}

// Build partitions inst's classes into clusters using the teacher-
// sharing graph, recursively halving clusters above MaxClusterSize and
// merging clusters below MinClusterSize in ascending-size order.
func Build(inst *model.Instance) []Cluster {
	graph := teacherClassGraph(inst)
	components := connectedComponents(inst, graph)

	var balanced []map[string]bool
	for _, comp := range components {
		if countRequests(inst, comp) > MaxClusterSize {
			balanced = append(balanced, split(inst, comp)...)
		} else {
			balanced = append(balanced, comp)
		}
	}
	balanced = mergeSmall(inst, balanced)

	clusters := make([]Cluster, 0, len(balanced))
	for i, classIDs := range balanced {
		clusters = append(clusters, metadata(inst, classIDs, i))
	}
	return clusters
}

// SubProblem restricts inst to cluster's classes, the teachers
// qualified for any subject those classes require, and fixed lessons
// whose class is in the cluster. Rooms, subjects, config and
// preferences are shared and kept unchanged (§4.7).
func SubProblem(inst *model.Instance, c Cluster) *model.Instance {
	classSet := make(map[string]bool, len(c.ClassIDs))
	for _, id := range c.ClassIDs {
		classSet[id] = true
	}
	teacherSet := make(map[string]bool, len(c.TeacherIDs))
	for _, id := range c.TeacherIDs {
		teacherSet[id] = true
	}

	sub := &model.Instance{
		Config:      inst.Config,
		Preferences: inst.Preferences,
		Rooms:       inst.Rooms,
		Subjects:    inst.Subjects,
	}
	for _, cl := range inst.Classes {
		if classSet[cl.ID] {
			sub.Classes = append(sub.Classes, cl)
		}
	}
	for _, t := range inst.Teachers {
		if teacherSet[t.ID] {
			sub.Teachers = append(sub.Teachers, t)
		}
	}
	for _, fl := range inst.FixedLessons {
		if classSet[fl.ClassID] {
			sub.FixedLessons = append(sub.FixedLessons, fl)
		}
	}
	return sub
}

func teacherClassGraph(inst *model.Instance) map[string]map[string]bool {
	graph := make(map[string]map[string]bool, len(inst.Classes))
	for _, c := range inst.Classes {
		graph[c.ID] = make(map[string]bool)
	}
	for _, t := range inst.Teachers {
		var taught []string
		for _, c := range inst.Classes {
			matched := false
			for subjectID := range c.SubjectRequirements {
				if matched {
					break
				}
				if t.QualifiedFor(subjectID) {
					taught = append(taught, c.ID)
					matched = true
				}
			}
		}
		for i, a := range taught {
			for _, b := range taught[i+1:] {
				graph[a][b] = true
				graph[b][a] = true
			}
		}
	}
	return graph
}

func connectedComponents(inst *model.Instance, graph map[string]map[string]bool) []map[string]bool {
	visited := make(map[string]bool, len(graph))
	var components []map[string]bool

	for _, c := range sortedClassIDs(inst) {
		if visited[c] {
			continue
		}
		component := make(map[string]bool)
		queue := []string{c}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if visited[cur] {
				continue
			}
			visited[cur] = true
			component[cur] = true
			neighbors := make([]string, 0, len(graph[cur]))
			for n := range graph[cur] {
				if !visited[n] {
					neighbors = append(neighbors, n)
				}
			}
			sort.Strings(neighbors)
			queue = append(queue, neighbors...)
		}
		components = append(components, component)
	}
	return components
}

func sortedClassIDs(inst *model.Instance) []string {
	ids := make([]string, 0, len(inst.Classes))
	for _, c := range inst.Classes {
		ids = append(ids, c.ID)
	}
	sort.Strings(ids)
	return ids
}

func countRequests(inst *model.Instance, classIDs map[string]bool) int {
	total := 0
	for _, c := range inst.Classes {
		if !classIDs[c.ID] {
			continue
		}
		for _, req := range c.SubjectRequirements {
			total += req.PeriodsPerWeek
		}
	}
	return total
}

// split bisects a cluster into two ordered-list halves, matching the
// original source's naive approach rather than a min-cut/spectral
// partition, and recurses on any half still over MaxClusterSize.
func split(inst *model.Instance, cluster map[string]bool) []map[string]bool {
	ids := make([]string, 0, len(cluster))
	for id := range cluster {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	mid := len(ids) / 2

	halves := []map[string]bool{setOf(ids[:mid]), setOf(ids[mid:])}
	var result []map[string]bool
	for _, half := range halves {
		if countRequests(inst, half) > MaxClusterSize {
			result = append(result, split(inst, half)...)
		} else {
			result = append(result, half)
		}
	}
	return result
}

func setOf(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// mergeSmall merges clusters below MinClusterSize with the next
// smallest clusters in ascending-size order until the merged group
// crosses the floor, matching the original source's pass.
func mergeSmall(inst *model.Instance, clusters []map[string]bool) []map[string]bool {
	type sized struct {
		set  map[string]bool
		size int
	}
	ss := make([]sized, 0, len(clusters))
	for _, c := range clusters {
		ss = append(ss, sized{c, countRequests(inst, c)})
	}
	sort.SliceStable(ss, func(i, j int) bool { return ss[i].size < ss[j].size })

	var merged []map[string]bool
	var current map[string]bool
	currentSize := 0

	flush := func() {
		if current != nil {
			merged = append(merged, current)
			current = nil
			currentSize = 0
		}
	}

	for _, s := range ss {
		if s.size >= MinClusterSize {
			flush()
			merged = append(merged, s.set)
			continue
		}
		if current == nil {
			current = make(map[string]bool, len(s.set))
			for id := range s.set {
				current[id] = true
			}
			currentSize = s.size
		} else {
			for id := range s.set {
				current[id] = true
			}
			currentSize += s.size
			if currentSize >= MinClusterSize {
				flush()
			}
		}
	}
	flush()
	return merged
}

func metadata(inst *model.Instance, classIDs map[string]bool, id int) Cluster {
	teacherSet := make(map[string]bool)
	numRequests := 0
	for _, c := range inst.Classes {
		if !classIDs[c.ID] {
			continue
		}
		for subjectID, req := range c.SubjectRequirements {
			numRequests += req.PeriodsPerWeek
			for _, t := range inst.Teachers {
				if t.QualifiedFor(subjectID) {
					teacherSet[t.ID] = true
				}
			}
		}
	}

	classes := make([]string, 0, len(classIDs))
	for id := range classIDs {
		classes = append(classes, id)
	}
	sort.Strings(classes)

	teachers := make([]string, 0, len(teacherSet))
	for id := range teacherSet {
		teachers = append(teachers, id)
	}
	sort.Strings(teachers)

	return Cluster{ID: id, ClassIDs: classes, NumRequests: numRequests, TeacherIDs: teachers}
}
