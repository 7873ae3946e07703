package opengl

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ProgramConfig describes a shader program. Programs with the same config
// are compiled only once.
type ProgramConfig struct {
	Name           string
	VertexSource   string
	FragmentSource string
}

type CachedProgram struct {
	ID       uint32
	uniforms *lru.Cache[string, int32]
}

// Uniform returns the location of the named uniform variable.
func (pc *CachedProgram) Uniform(name string) int32 {
	location, ok := pc.uniforms.Get(name)
	if ok {
		return location
	}

	location = gl.GetUniformLocation(pc.ID, gl.Str(name+"\x00"))
	pc.uniforms.Add(name, location)

	return location
}

type ProgramCache struct {
	cache *lru.Cache[ProgramConfig, *CachedProgram]
}

func NewProgramCache() *ProgramCache {
	cache, _ := lru.NewWithEvict[ProgramConfig, *CachedProgram](16, deleteProgramOnEviction)

	return &ProgramCache{cache: cache}
}

func (p *ProgramCache) Get(conf ProgramConfig) (*CachedProgram, error) {
	cached, ok := p.cache.Get(conf)
	if ok {
		return cached, nil
	}

	id, err := linkProgram(conf.VertexSource, conf.FragmentSource)
	if err != nil {
		return nil, fmt.Errorf("build program %q: %w", conf.Name, err)
	}

	slog.Debug("Compiled shader program", slog.String("name", conf.Name), slog.Int("id", int(id)))

	uniforms, _ := lru.New[string, int32](16)

	pc := &CachedProgram{ID: id, uniforms: uniforms}
	p.cache.Add(conf, pc)

	return pc, nil
}

// Purge deletes all cached programs.
func (p *ProgramCache) Purge() {
	p.cache.Purge()
}

func deleteProgramOnEviction(_config ProgramConfig, program *CachedProgram) {
	program.uniforms.Purge()
	gl.DeleteProgram(program.ID)
}

func linkProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}

	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}

	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("link: %s", strings.TrimRight(log, "\x00"))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()

	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("compile: %s", strings.TrimRight(log, "\x00"))
	}

	return shader, nil
}
