package lightlab

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module installs resources and systems into an App.
type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	ecs       *Ecs
	quit      bool
	frame     uint64

	// Command Buffering
	pendingAdditions []pendingAdd
	pendingRemovals  []EntityId
	pendingCompAdds  []pendingCompAdd
}

type pendingAdd struct {
	eid        EntityId
	components []any
}

type pendingCompAdd struct {
	eid        EntityId
	components []any
}

func NewApp() *App {
	ecs := MakeEcs()
	app := &App{
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
		ecs:       &ecs,
	}
	for _, stage := range defaultStages {
		app.stages = append(app.stages, stage)
		app.systems[stage.Name] = make([]systemFn, 0)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, module := range modules {
		module.Install(app, cmd)
	}
	app.FlushCommands()
	return app
}

// Run executes frames until a system requests Quit.
func (app *App) Run() {
	app.Logger().Debugf("Running %d stages", len(app.stages))
	for !app.quit {
		app.Step()
	}
	app.Logger().Infof("Stopped after %d frames", app.frame)
}

// Step executes every stage once.
func (app *App) Step() {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
		app.FlushCommands()
	}
	app.frame++
}

func (app *App) Frame() uint64 {
	return app.frame
}

func (app *App) Quit() {
	app.quit = true
}

func (app *App) Quitting() bool {
	return app.quit
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource %s must be a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the resource of type T installed in app.
func Resource[T any](app *App) (*T, bool) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	res, ok := app.resources[t]
	if !ok {
		return nil, false
	}
	typed, ok := res.(*T)
	return typed, ok
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("system %s takes non-pointer argument %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(), argType))
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			app.Logger().Errorf("%s", msg)
			panic(msg)
		}
	}
	systemValue.Call(args)
}

func (app *App) FlushCommands() {
	if len(app.pendingAdditions) == 0 && len(app.pendingRemovals) == 0 && len(app.pendingCompAdds) == 0 {
		return
	}

	// Removals first so additions never land on dead entities.
	for _, eid := range app.pendingRemovals {
		app.ecs.removeEntity(eid)
	}
	app.pendingRemovals = app.pendingRemovals[:0]

	for _, add := range app.pendingAdditions {
		app.ecs.insertEntity(add.eid, add.components...)
	}
	app.pendingAdditions = app.pendingAdditions[:0]

	for _, add := range app.pendingCompAdds {
		app.ecs.addComponents(add.eid, add.components...)
	}
	app.pendingCompAdds = app.pendingCompAdds[:0]
}
