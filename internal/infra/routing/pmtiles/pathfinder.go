package pmtiles

import (
	"container/heap"
	"math"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// NodeID represents a unique node identifier in the road graph
type NodeID int64

// Edge represents a directed edge in the road graph
type Edge struct {
	To       NodeID
	Distance float64 // metres
	Duration float64 // seconds
}

// RoadGraph is the routable network assembled from one or more tiles
type RoadGraph struct {
	Nodes    map[NodeID]orb.Point
	Edges    map[NodeID][]Edge
	nodeIdx  int64
	pointMap map[string]NodeID // rounded "lat,lng" -> node, joins tiles on shared vertices
}

// NewRoadGraph creates a new empty road graph
func NewRoadGraph() *RoadGraph {
	return &RoadGraph{
		Nodes:    make(map[NodeID]orb.Point),
		Edges:    make(map[NodeID][]Edge),
		pointMap: make(map[string]NodeID),
	}
}

// AddSegment adds a road segment travelled at speedKmh. Non-positive speeds
// fall back to the segment's class speed.
func (g *RoadGraph) AddSegment(segment *RoadSegment, speedKmh float64) {
	if len(segment.Points) < 2 {
		return
	}
	if speedKmh <= 0 {
		speedKmh = segment.MaxSpeed
	}
	if speedKmh <= 0 {
		speedKmh = defaultSpeedKmh
	}

	prev := g.node(segment.Points[0])
	for i := 1; i < len(segment.Points); i++ {
		curr := g.node(segment.Points[i])
		if curr == prev {
			continue
		}

		dist := geo.DistanceHaversine(segment.Points[i-1], segment.Points[i])
		duration := dist / 1000 / speedKmh * 3600

		g.Edges[prev] = append(g.Edges[prev], Edge{To: curr, Distance: dist, Duration: duration})
		if !segment.OneWay {
			g.Edges[curr] = append(g.Edges[curr], Edge{To: prev, Distance: dist, Duration: duration})
		}

		prev = curr
	}
}

func (g *RoadGraph) node(point orb.Point) NodeID {
	key := pointKey(point)
	if id, ok := g.pointMap[key]; ok {
		return id
	}

	g.nodeIdx++
	id := NodeID(g.nodeIdx)
	g.Nodes[id] = point
	g.pointMap[key] = id

	return id
}

// pointKey rounds to 5 decimals, roughly one metre.
func pointKey(p orb.Point) string {
	lat := math.Round(p[1]*1e5) / 1e5
	lng := math.Round(p[0]*1e5) / 1e5

	return strconv.FormatFloat(lat, 'f', 5, 64) + "," + strconv.FormatFloat(lng, 'f', 5, 64)
}

// NearestNode returns the node closest to point and its distance in metres.
func (g *RoadGraph) NearestNode(point orb.Point) (NodeID, float64, bool) {
	if len(g.Nodes) == 0 {
		return 0, 0, false
	}

	var nearest NodeID
	best := math.MaxFloat64
	for id, p := range g.Nodes {
		if d := geo.DistanceHaversine(point, p); d < best {
			best, nearest = d, id
		}
	}

	return nearest, best, true
}

// PathResult is the outcome of a shortest path search
type PathResult struct {
	Nodes       []NodeID
	Distance    float64 // metres
	Duration    float64 // seconds
	IsReachable bool
}

// Points resolves the node path to coordinates.
func (r PathResult) Points(g *RoadGraph) orb.LineString {
	line := make(orb.LineString, 0, len(r.Nodes))
	for _, id := range r.Nodes {
		line = append(line, g.Nodes[id])
	}

	return line
}

// Pathfinder runs Dijkstra over a road graph
type Pathfinder struct {
	graph *RoadGraph
}

// NewPathfinder creates a new pathfinder for the given graph
func NewPathfinder(graph *RoadGraph) *Pathfinder {
	return &Pathfinder{graph: graph}
}

type dijkstraNode struct {
	id       NodeID
	distance float64
	duration float64
	index    int
}

type priorityQueue []*dijkstraNode

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].distance < pq[j].distance
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	node := x.(*dijkstraNode)
	node.index = len(*pq)
	*pq = append(*pq, node)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*pq = old[:n-1]

	return node
}

// ShortestPath finds the shortest path by distance and returns the node
// sequence from source to target.
func (pf *Pathfinder) ShortestPath(source, target NodeID) PathResult {
	if _, ok := pf.graph.Nodes[source]; !ok {
		return PathResult{}
	}
	if _, ok := pf.graph.Nodes[target]; !ok {
		return PathResult{}
	}

	distances := map[NodeID]float64{source: 0}
	prev := make(map[NodeID]NodeID)
	visited := make(map[NodeID]bool)

	queue := make(priorityQueue, 0)
	heap.Init(&queue)
	heap.Push(&queue, &dijkstraNode{id: source})

	for queue.Len() > 0 {
		current := heap.Pop(&queue).(*dijkstraNode)
		if visited[current.id] {
			continue
		}
		visited[current.id] = true

		if current.id == target {
			return PathResult{
				Nodes:       reconstruct(prev, source, target),
				Distance:    current.distance,
				Duration:    current.duration,
				IsReachable: true,
			}
		}

		for _, edge := range pf.graph.Edges[current.id] {
			if visited[edge.To] {
				continue
			}

			dist := current.distance + edge.Distance
			if known, ok := distances[edge.To]; ok && dist >= known {
				continue
			}
			distances[edge.To] = dist
			prev[edge.To] = current.id
			heap.Push(&queue, &dijkstraNode{
				id:       edge.To,
				distance: dist,
				duration: current.duration + edge.Duration,
			})
		}
	}

	return PathResult{}
}

func reconstruct(prev map[NodeID]NodeID, source, target NodeID) []NodeID {
	nodes := []NodeID{target}
	for at := target; at != source; {
		at = prev[at]
		nodes = append(nodes, at)
	}

	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}

	return nodes
}
