// Package solar is the scene-graph and camera-targeting core of an orrery: a
// star, its planets and their satellites, all spinning every frame, with a
// camera that can be sent to any body on request.
//
// The core does no rasterization. It talks to a rendering host through the
// [Engine] interface and is driven by the host's frame callback through a
// [RenderLoop]. Two hosts ship with the module: ebitenhost (a window) and
// termhost (a terminal map).
//
// # Quick start
//
//	tables, _ := solar.DefaultTables()
//	scene, err := solar.NewScene(tables, solar.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	engine := ebitenhost.New(ebitenhost.Options{Width: 1280, Height: 720})
//	scene.Bind(engine)
//	engine.OnSelect = scene.OnSelect
//
//	loop := solar.NewRenderLoop(scene, engine, solar.LoopOptions{})
//	loop.Gate().Open()
//	if err := loop.RunForever(); err != nil {
//		log.Fatal(err)
//	}
//
// # Scene graph
//
// Every transform lives in a [Hierarchy], an arena of nodes addressed by
// [NodeID]. Body meshes hang off the root, satellite pivots hang off their
// primary, and the camera rig (a pivot with the camera as its only child)
// hangs wherever the active targeting strategy puts it. [Hierarchy.Attach]
// re-parents a node in one step and refuses to create cycles.
//
// # Camera targeting
//
// A [Targeter] moves the camera when a body is selected. [StrategyReparent]
// attaches the rig under the body so the camera rides its rotation.
// [StrategyTween] keeps the rig at the root and eases the camera across the
// scene to a tabulated framing position (via [gween]).
//
// # Tables
//
// Body sizes, distances, spin rates, lookout offsets and tween targets come
// from a TOML table. The default table is embedded; [LoadTables] reads
// another one.
//
// [gween]: https://github.com/tanema/gween
package solar
