package classroom

import (
	"fmt"
	"strings"
)

// Node kinds
const (
	KindGroup = "group"
	KindMesh  = "mesh"
	KindModel = "model"
	KindLight = "light"
	KindText  = "text"
)

// Shapes of mesh nodes
const (
	ShapeBox    = "box"
	ShapeSphere = "sphere"
	ShapePlane  = "plane"
)

// Node is an element of the scene graph. World is only valid after Graph.Update.
type Node struct {
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	Shape    string    `json:"shape,omitempty"`
	Size     Vec3      `json:"size"`
	Color    string    `json:"color,omitempty"`
	Asset    string    `json:"asset,omitempty"`
	Text     string    `json:"text,omitempty"`
	Light    *Light    `json:"light,omitempty"`
	Local    Transform `json:"local"`
	World    World     `json:"-"`
	Children []*Node   `json:"children,omitempty"`
}

func (n *Node) add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

func group(name string, t Transform) *Node {
	return &Node{Name: name, Kind: KindGroup, Local: t}
}

func box(name string, size Vec3, color string, t Transform) *Node {
	return &Node{Name: name, Kind: KindMesh, Shape: ShapeBox, Size: size, Color: color, Local: t}
}

func sphere(name string, radius float64, color string, t Transform) *Node {
	return &Node{Name: name, Kind: KindMesh, Shape: ShapeSphere, Size: Vec3{radius, radius, radius}, Color: color, Local: t}
}

// Graph is the scene graph of one Scene.
type Graph struct {
	Root *Node `json:"root"`
	// animated nodes by path
	heads []string
	arm   string
}

// Build turns a scene description into its graph and resolves the world transforms.
func Build(s Scene) *Graph {
	g := &Graph{Root: group("scene", At(0, 0, 0))}

	g.Root.add(buildRoom(s.Room))

	if s.Layout.Furniture {
		furniture := group("furniture", At(0, 0, 0))
		for _, seat := range s.Layout.Seats() {
			furniture.add(buildDesk(seat))
		}
		g.Root.add(furniture)
	}

	if s.Whiteboard != nil {
		wb := s.Whiteboard
		g.Root.add(
			box("whiteboard", Vec3{wb.Width, wb.Height, 0.1}, "#F8FAFC", wb.Transform).add(
				&Node{Name: "text", Kind: KindText, Text: wb.Text, Color: "#0F172A", Local: At(0, 0, 0.06)},
			),
		)
	}

	actors := group("actors", At(0, 0, 0))
	teacher := g.buildActor("actors/teacher", "teacher", s.Teacher, s.Figures[s.Teacher.Figure], true)
	actors.add(teacher)
	for _, a := range s.Layout.Students() {
		actors.add(g.buildActor("actors/"+a.Name, a.Name, a, s.Figures[a.Figure], false))
	}
	g.Root.add(actors)

	lights := group("lights", At(0, 0, 0))
	for i := range s.Lights {
		l := s.Lights[i]
		lights.add(&Node{Name: fmt.Sprintf("%s-%d", l.Kind, i), Kind: KindLight, Light: &l, Local: At(l.Position[0], l.Position[1], l.Position[2])})
	}
	g.Root.add(lights)

	g.Update()
	return g
}

func buildRoom(r Room) *Node {
	room := group("room", At(0, 0, 0))
	if r.Model != "" {
		room.Asset = r.Model
		room.Kind = KindModel
		return room
	}
	halfW, halfD, halfH := r.Width/2, r.Depth/2, r.Height/2
	return room.add(
		box("floor", Vec3{r.Width, 0.1, r.Depth}, r.FloorColor, At(0, -0.05, 0)),
		box("wall-back", Vec3{r.Width, r.Height, 0.1}, r.WallColor, At(0, halfH, -halfD)),
		box("wall-left", Vec3{0.1, r.Height, r.Depth}, r.WallColor, At(-halfW, halfH, 0)),
		box("wall-right", Vec3{0.1, r.Height, r.Depth}, r.WallColor, At(halfW, halfH, 0)),
	)
}

func buildDesk(seat Seat) *Node {
	const wood, metal = "#A0522D", "#475569"
	p := seat.Position
	return group(fmt.Sprintf("desk-%d-%d", seat.Row+1, seat.Index+1), At(p[0], 0, p[2])).add(
		box("top", Vec3{1.4, 0.08, 0.7}, wood, At(0, 0.75, -0.55)),
		box("leg-left", Vec3{0.06, 0.75, 0.6}, metal, At(-0.65, 0.375, -0.55)),
		box("leg-right", Vec3{0.06, 0.75, 0.6}, metal, At(0.65, 0.375, -0.55)),
		box("chair", Vec3{0.5, 0.06, 0.5}, metal, At(0, 0.45, 0.1)),
		box("chair-back", Vec3{0.5, 0.5, 0.06}, metal, At(0, 0.7, 0.35)),
	)
}

// buildActor makes a model node when the figure has a model, and a primitive humanoid otherwise.
func (g *Graph) buildActor(path, name string, a Actor, f Figure, teaching bool) *Node {
	n := group(name, a.Transform)
	if f.Model != "" {
		n.Kind = KindModel
		n.Asset = f.Model
		return n
	}

	torsoY, headY := 0.9, 1.45
	if teaching {
		torsoY, headY = 1.2, 1.75
	}
	n.add(
		box("torso", Vec3{0.5, 0.7, 0.3}, f.Color, At(0, torsoY, 0)),
		sphere("head", 0.2, f.SkinColor, At(0, headY, 0)),
		box("arm-left", Vec3{0.12, 0.6, 0.12}, f.Color, At(-0.33, torsoY, 0)),
		box("arm-right", Vec3{0.12, 0.6, 0.12}, f.Color, At(0.33, torsoY, 0)),
	)
	if teaching {
		n.add(
			box("leg-left", Vec3{0.15, 0.85, 0.15}, "#1F2937", At(-0.12, 0.425, 0)),
			box("leg-right", Vec3{0.15, 0.85, 0.15}, "#1F2937", At(0.12, 0.425, 0)),
		)
		g.arm = path + "/arm-right"
	}
	g.heads = append(g.heads, path+"/head")
	return n
}

// Update recomputes the world transform of every node.
func (g *Graph) Update() {
	var walk func(n *Node, parent World)
	walk = func(n *Node, parent World) {
		n.World = parent.Compose(n.Local)
		for _, c := range n.Children {
			walk(c, n.World)
		}
	}
	walk(g.Root, rootWorld)
}

// Find looks a node up by its slash separated path below the root, e.g. "actors/teacher/head".
func (g *Graph) Find(path string) (*Node, bool) {
	n := g.Root
	for _, name := range strings.Split(path, "/") {
		var next *Node
		for _, c := range n.Children {
			if c.Name == name {
				next = c
				break
			}
		}
		if next == nil {
			return nil, false
		}
		n = next
	}
	return n, true
}

// Walk visits every node depth first, parents before children.
func (g *Graph) Walk(fn func(path string, n *Node)) {
	var walk func(prefix string, n *Node)
	walk = func(prefix string, n *Node) {
		for _, c := range n.Children {
			p := c.Name
			if prefix != "" {
				p = prefix + "/" + c.Name
			}
			fn(p, c)
			walk(p, c)
		}
	}
	walk("", g.Root)
}

// Count returns how many nodes of the given kind the graph holds.
func (g *Graph) Count(kind string) int {
	var n int
	g.Walk(func(_ string, node *Node) {
		if node.Kind == kind {
			n++
		}
	})
	return n
}
