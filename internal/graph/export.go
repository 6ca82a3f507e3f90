package graph

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// View is everything the renderer needs for one threshold and query.
type View struct {
	Threshold float64        `json:"threshold" yaml:"threshold"`
	Range     ThresholdRange `json:"range" yaml:"range"`
	Nodes     []Node         `json:"nodes" yaml:"nodes"`
	Edges     []Edge         `json:"edges" yaml:"edges"`
	Stats     Stats          `json:"stats" yaml:"stats"`
	Highlight Highlight      `json:"highlight" yaml:"highlight"`
	TopK      int            `json:"top_k" yaml:"top_k"`
	// AllEdges lets the HTML viewer re-filter without a round trip.
	AllEdges []Edge `json:"-" yaml:"-"`
}

// BuildView clamps threshold to rng, filters the edges and computes stats and
// the search highlight.
func BuildView(g *Graph, rng ThresholdRange, threshold float64, query string, topK int) View {
	rng = rng.Normalize()
	if topK <= 0 {
		topK = DefaultTopK
	}
	t := rng.Clamp(threshold)
	visible := g.Visible(t)
	return View{
		Threshold: t,
		Range:     rng,
		Nodes:     g.Nodes,
		Edges:     visible.Edges,
		Stats:     visible.Stats(topK),
		Highlight: g.Search(query),
		TopK:      topK,
		AllEdges:  g.Edges,
	}
}

// ExportJSON returns the view as pretty-printed JSON.
func ExportJSON(v View) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// ExportYAML returns the view as YAML.
func ExportYAML(v View) ([]byte, error) {
	return yaml.Marshal(v)
}

// ExportDOT returns the visible graph in Graphviz DOT format.
func ExportDOT(v View) string {
	var b strings.Builder
	b.WriteString("graph semnet {\n")
	b.WriteString("  layout=neato;\n")
	b.WriteString("  node [shape=circle, style=filled];\n\n")

	nodes := make([]Node, len(v.Nodes))
	copy(nodes, v.Nodes)
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	for _, n := range nodes {
		attrs := fmt.Sprintf("label=%q, colorscheme=set310, fillcolor=%d", n.Label, topicColorIndex(n.Topic))
		if n.ID == v.Highlight.Highlighted {
			attrs += ", penwidth=3"
		}
		b.WriteString(fmt.Sprintf("  %q [%s];\n", n.ID, attrs))
	}

	b.WriteString("\n")
	for _, e := range v.Edges {
		b.WriteString(fmt.Sprintf("  %q -- %q [label=\"%.2f\", penwidth=%.2f];\n", e.Source, e.Target, e.Weight, e.Weight*2))
	}

	b.WriteString("}\n")
	return b.String()
}

// topicColorIndex maps any topic, negative included, onto set310's 1..10.
func topicColorIndex(topic int) int {
	return (topic%10+10)%10 + 1
}

// ExportHTML returns a self-contained HTML page with a force-directed view of
// the network. The page carries every edge and filters client-side when the
// threshold slider moves. It fails only when the view holds values JSON cannot
// encode.
func ExportHTML(v View) (string, error) {
	type jsNode struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Topic int    `json:"topic"`
	}

	nodes := make([]jsNode, 0, len(v.Nodes))
	for _, n := range v.Nodes {
		nodes = append(nodes, jsNode{ID: n.ID, Name: n.Label, Topic: n.Topic})
	}
	all := v.AllEdges
	if all == nil {
		all = v.Edges
	}

	// json.Marshal escapes <, > and &, so ids and labels cannot close the
	// script element.
	var blobs [5][]byte
	for i, x := range []any{nodes, all, v.Range, v.Stats, v.Highlight.Highlighted} {
		data, err := json.Marshal(x)
		if err != nil {
			return "", fmt.Errorf("html export: %w", err)
		}
		blobs[i] = data
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>semnet relations</title>
<style>
*{margin:0;padding:0;box-sizing:border-box}
body{background:#fafafa;color:#222;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',sans-serif;overflow:hidden}
canvas{display:block}
#panel{position:fixed;top:16px;left:16px;z-index:10;background:#fff;border:1px solid #ddd;border-radius:8px;padding:14px 18px;font-size:13px;min-width:240px;box-shadow:0 4px 6px rgba(0,0,0,0.1)}
#panel h2{color:#4338ca;font-size:16px;margin-bottom:8px}
.stat{color:#666;margin:2px 0}
.stat b{color:#222}
#central{margin-top:8px}
#controls{position:fixed;top:16px;right:16px;z-index:10;background:#fff;border:1px solid #ddd;border-radius:8px;padding:10px 14px;font-size:13px;width:240px}
#controls input[type=text]{width:100%%;padding:6px 8px;border:1px solid #ccc;border-radius:6px;margin-top:8px}
#legend{position:fixed;bottom:16px;right:16px;z-index:10;background:#fff;border:1px solid #ddd;border-radius:8px;padding:10px 14px;font-size:12px}
.leg-row{margin:3px 0;display:flex;align-items:center;gap:8px}
.dot{width:12px;height:12px;display:inline-block}
</style>
</head>
<body>
<div id="panel">
  <h2>Semantic network</h2>
  <div class="stat"><b id="s-nodes">0</b> spaces, <b id="s-edges">0</b> links</div>
  <div class="stat">density <b id="s-density">n/a</b></div>
  <div class="stat">avg degree <b id="s-degree">0</b></div>
  <div class="stat">weight <b id="s-weight">n/a</b></div>
  <div class="stat"><b id="s-topics">0</b> topics</div>
  <div id="central"></div>
</div>
<div id="controls">
  <label>threshold <b id="t-val"></b></label>
  <input id="threshold" type="range">
  <input id="search" type="text" placeholder="Search spaces...">
</div>
<div id="legend"></div>
<canvas id="canvas"></canvas>
<script>
"use strict";
const NODES=%s;
const EDGES=%s;
const RANGE=%s;
let STATS=%s;
let threshold=%g;
let highlighted=%s;
const TOPK=%d;

const PALETTE=['#1f77b4','#ff7f0e','#2ca02c','#d62728','#9467bd','#8c564b','#e377c2','#7f7f7f','#bcbd22','#17becf'];
const topicColor=t=>PALETTE[((t%%10)+10)%%10];

const legend=document.getElementById('legend');
[...new Set(NODES.map(n=>n.topic))].forEach(t=>{
  const row=document.createElement('div');row.className='leg-row';
  const dot=document.createElement('span');dot.className='dot';dot.style.background=topicColor(t);
  row.appendChild(dot);row.appendChild(document.createTextNode('Topic '+t));legend.appendChild(row);
});

function fmt(x){return x===null||x===undefined?'n/a':(+x).toFixed(3)}
function computeStats(edges){
  const deg={};NODES.forEach(n=>deg[n.id]=0);
  const ws=[];
  edges.forEach(e=>{deg[e.source]++;deg[e.target]++;ws.push(e.weight)});
  const n=NODES.length,m=edges.length;
  const wdeg=edges.reduce((a,e)=>a+2*e.weight,0);
  const s={node_count:n,edge_count:m,density:n>1?2*m/(n*(n-1)):null,avg_degree:n?2*m/n:0,avg_weighted_degree:n?wdeg/n:0,weights:null,topic_count:STATS.topic_count};
  if(m){
    ws.sort((a,b)=>a-b);
    const med=m%%2?ws[(m-1)/2]:(ws[m/2-1]+ws[m/2])/2;
    let mean=0;ws.forEach((w,i)=>{mean+=(w-mean)/(i+1)});
    s.weights={min:ws[0],max:ws[m-1],mean:mean,median:med};
  }
  s.central_nodes=NODES.map((nd,i)=>({i,id:nd.id,name:nd.name,degree:deg[nd.id]}))
    .sort((a,b)=>b.degree-a.degree||a.i-b.i).slice(0,TOPK);
  return s;
}
function renderStats(){
  document.getElementById('s-nodes').textContent=STATS.node_count;
  document.getElementById('s-edges').textContent=STATS.edge_count;
  document.getElementById('s-density').textContent=fmt(STATS.density);
  document.getElementById('s-degree').textContent=fmt(STATS.avg_degree)+' (weighted '+fmt(STATS.avg_weighted_degree)+')';
  document.getElementById('s-weight').textContent=STATS.weights?fmt(STATS.weights.mean)+' (median '+fmt(STATS.weights.median)+')':'n/a';
  document.getElementById('s-topics').textContent=STATS.topic_count;
  const c=document.getElementById('central');c.textContent='';
  (STATS.central_nodes||[]).forEach(e=>{
    const d=document.createElement('div');d.className='stat';d.textContent=e.name+' ('+e.degree+')';c.appendChild(d);
  });
}

const slider=document.getElementById('threshold');
slider.min=RANGE.min;slider.max=RANGE.max;slider.step=RANGE.step;slider.value=threshold;
document.getElementById('t-val').textContent=threshold.toFixed(2);

const canvas=document.getElementById('canvas');
const ctx=canvas.getContext('2d');
let W,H;
function resize(){W=canvas.width=window.innerWidth;H=canvas.height=window.innerHeight}
resize();
window.addEventListener('resize',resize);

const index={};NODES.forEach((n,i)=>index[n.id]=i);
const sim={nodes:NODES.map(n=>({...n,x:W/2+(Math.random()-0.5)*400,y:H/2+(Math.random()-0.5)*400,vx:0,vy:0})),edges:[]};
function visibleEdges(){return EDGES.filter(e=>e.weight>=threshold)}
function layoutEdges(){
  sim.edges=visibleEdges().map(e=>({...e,si:index[e.source],ti:index[e.target]}));
}
// STATS arrives precomputed for the initial threshold; recompute only when
// the slider moves.
slider.addEventListener('input',function(){
  threshold=+this.value;document.getElementById('t-val').textContent=threshold.toFixed(2);
  layoutEdges();STATS=computeStats(visibleEdges());renderStats();
});
document.getElementById('search').addEventListener('input',function(){
  const q=this.value.trim().toLowerCase();
  const hits=q?NODES.filter(n=>n.name.toLowerCase().includes(q)):[];
  highlighted=hits.length===1?hits[0].id:'';
});

let drag=null;
function tick(){
  const nodes=sim.nodes;
  for(const n of nodes){n.vx+=(W/2-n.x)*0.001;n.vy+=(H/2-n.y)*0.001}
  for(let i=0;i<nodes.length;i++){
    for(let j=i+1;j<nodes.length;j++){
      let dx=nodes[j].x-nodes[i].x,dy=nodes[j].y-nodes[i].y;
      let d2=dx*dx+dy*dy;if(d2<1)d2=1;
      const f=3000/d2;
      nodes[i].vx-=dx*f/100;nodes[i].vy-=dy*f/100;nodes[j].vx+=dx*f/100;nodes[j].vy+=dy*f/100;
    }
  }
  for(const e of sim.edges){
    const a=nodes[e.si],b=nodes[e.ti];
    const dx=b.x-a.x,dy=b.y-a.y,d=Math.sqrt(dx*dx+dy*dy)||1;
    const f=(d-100)*0.005,fx=dx/d*f,fy=dy/d*f;
    a.vx+=fx;a.vy+=fy;b.vx-=fx;b.vy-=fy;
  }
  for(const n of nodes){if(n===drag)continue;n.vx*=0.85;n.vy*=0.85;n.x+=n.vx;n.y+=n.vy}
}
function draw(){
  ctx.clearRect(0,0,W,H);
  for(const e of sim.edges){
    const a=sim.nodes[e.si],b=sim.nodes[e.ti];
    ctx.beginPath();ctx.moveTo(a.x,a.y);ctx.lineTo(b.x,b.y);
    ctx.strokeStyle='#aaa';ctx.lineWidth=e.weight*2;ctx.stroke();
  }
  for(const n of sim.nodes){
    const hl=n.id===highlighted;
    ctx.beginPath();ctx.arc(n.x,n.y,hl?14:10,0,Math.PI*2);
    ctx.fillStyle=topicColor(n.topic);ctx.fill();
    if(hl){ctx.strokeStyle='#000';ctx.lineWidth=3;ctx.stroke()}
    ctx.font=(hl?'bold ':'')+'12px sans-serif';ctx.fillStyle='#000';ctx.textAlign='center';
    ctx.fillText(n.name,n.x,n.y-15);
  }
}
canvas.addEventListener('mousedown',e=>{
  drag=sim.nodes.find(n=>(n.x-e.clientX)**2+(n.y-e.clientY)**2<144)||null;
});
canvas.addEventListener('mousemove',e=>{if(drag){drag.x=e.clientX;drag.y=e.clientY}});
canvas.addEventListener('mouseup',()=>{drag=null});

layoutEdges();renderStats();
(function loop(){tick();draw();requestAnimationFrame(loop)})();
</script>
</body>
</html>`, blobs[0], blobs[1], blobs[2], blobs[3], v.Threshold, blobs[4], v.TopK), nil
}
