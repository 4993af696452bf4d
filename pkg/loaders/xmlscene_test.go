package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayforge/raytracer/pkg/material"
)

const minimalSceneXML = `<?xml version="1.0"?>
<Scene>
  <BackgroundColor>0 0 0</BackgroundColor>
  <ShadowRayEpsilon>0.001</ShadowRayEpsilon>
  <IntersectionTestEpsilon>0.001</IntersectionTestEpsilon>
  <MaxRecursionDepth>3</MaxRecursionDepth>
  <Cameras>
    <Camera id="1">
      <Position>0 0 5</Position>
      <Gaze>0 0 -1</Gaze>
      <Up>0 1 0</Up>
      <FovY>45</FovY>
      <NearDistance>1</NearDistance>
      <ImageResolution>32 24</ImageResolution>
      <ImageName>out.png</ImageName>
      <NumSamples>1</NumSamples>
    </Camera>
  </Cameras>
  <Lights>
    <AmbientLight>0.1 0.1 0.1</AmbientLight>
    <PointLight>
      <Position>0 5 5</Position>
      <Intensity>100 100 100</Intensity>
    </PointLight>
  </Lights>
  <Materials>
    <Material id="1" type="default">
      <AmbientReflectance>0.2 0.2 0.2</AmbientReflectance>
      <DiffuseReflectance>0.8 0.2 0.2</DiffuseReflectance>
      <SpecularReflectance>0.1 0.1 0.1</SpecularReflectance>
      <PhongExponent>10</PhongExponent>
    </Material>
  </Materials>
  <VertexData>
    0 0 0
    1 0 0
    0 1 0
    0 0 1
  </VertexData>
  <Objects>
    <Sphere id="1">
      <Material>1</Material>
      <Center>1</Center>
      <Radius>1.0</Radius>
    </Sphere>
    <Triangle id="2">
      <Material>1</Material>
      <Indices>2 3 4</Indices>
    </Triangle>
  </Objects>
</Scene>
`

func writeTempScene(t *testing.T, xmlBody string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.xml")
	require.NoError(t, os.WriteFile(path, []byte(xmlBody), 0644))
	return path
}

func TestLoadXMLSceneMinimal(t *testing.T) {
	path := writeTempScene(t, minimalSceneXML)

	sc, outputs, err := LoadXMLScene(path)
	require.NoError(t, err)
	require.NotNil(t, sc)

	require.Len(t, outputs, 1)
	assert.Equal(t, "out.png", outputs[0].ImageName)
	assert.Equal(t, 32, outputs[0].Width)
	assert.Equal(t, 24, outputs[0].Height)
	assert.NotNil(t, outputs[0].Camera)

	assert.Len(t, sc.Objects, 2)
	assert.Equal(t, 3, sc.MaxDepth())
	assert.InDelta(t, 0.001, sc.ShadowEps(), 1e-9)

	require.Len(t, sc.Lights(), 1)
	assert.InDelta(t, 0.1, sc.AmbientLight().X, 1e-9)
}

func TestLoadXMLSceneAppliesMaterialFields(t *testing.T) {
	path := writeTempScene(t, minimalSceneXML)

	sc, _, err := LoadXMLScene(path)
	require.NoError(t, err)

	var sphere *material.Material
	for _, obj := range sc.Objects {
		if obj.Name == "1" {
			m, ok := obj.Material.(material.Material)
			require.True(t, ok, "object 1's Material should be a material.Material")
			sphere = &m
		}
	}
	require.NotNil(t, sphere, "expected to find the Sphere object")
	assert.InDelta(t, 0.8, sphere.DiffuseReflectance.X, 1e-9)
	assert.InDelta(t, 10.0, sphere.PhongExponent, 1e-9)
}

func TestLoadXMLSceneMissingFile(t *testing.T) {
	_, _, err := LoadXMLScene(filepath.Join(t.TempDir(), "nope.xml"))
	assert.Error(t, err)
}

func TestLoadXMLSceneRejectsBadVertexIndex(t *testing.T) {
	bad := `<?xml version="1.0"?>
<Scene>
  <Cameras>
    <Camera id="1">
      <Position>0 0 5</Position>
      <Gaze>0 0 -1</Gaze>
      <Up>0 1 0</Up>
      <FovY>45</FovY>
      <NearDistance>1</NearDistance>
      <ImageResolution>8 8</ImageResolution>
      <ImageName>out.png</ImageName>
    </Camera>
  </Cameras>
  <VertexData>0 0 0</VertexData>
  <Objects>
    <Sphere id="1">
      <Center>99</Center>
      <Radius>1.0</Radius>
    </Sphere>
  </Objects>
</Scene>
`
	path := writeTempScene(t, bad)
	_, _, err := LoadXMLScene(path)
	assert.Error(t, err)
}
