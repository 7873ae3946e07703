package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/oliverbestmann/stride/orion"
	"github.com/oliverbestmann/stride/scenes/market"
	"github.com/oliverbestmann/stride/scenes/physics2d"
	"github.com/oliverbestmann/stride/scenes/physics3d"
)

var sceneFactories = map[string]orion.SceneFactory{
	"2d": func(env orion.Env) orion.Scene {
		return physics2d.New(env)
	},

	"3d": func(env orion.Env) orion.Scene {
		return physics3d.New(env)
	},

	"market": func(env orion.Env) orion.Scene {
		return market.New(env)
	},
}

func sceneFactory(name string) (orion.SceneFactory, error) {
	factory, ok := sceneFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q, expected one of %s", name, strings.Join(sceneNames(), ", "))
	}

	return factory, nil
}

func sceneNames() []string {
	var names []string
	for name := range sceneFactories {
		names = append(names, name)
	}

	slices.Sort(names)
	return names
}
