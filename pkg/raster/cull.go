package raster

// backfaceThreshold is deliberately not 0. The reference renderer
// (original_source/src/rasterizer.cpp, Rasterizer::renderMesh) culls
// only when the best of the face normal and the averaged vertex normal
// dotted with the view direction drops below -0.7, which keeps
// silhouette-grazing triangles visible despite interpolation error and
// cheap (non-inverse-transpose) normal transforms. This is a tuning
// knob for scene fidelity, not a correctness parameter, and must not be
// tightened toward 0 without revalidating every reference scene.
const backfaceThreshold = -0.7
