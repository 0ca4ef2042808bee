package intro

// FragmentShader draws the GPU intro background: a grid, hashed binary
// rain, pulse rings and orbiting data points. Hosts supply uTime in seconds,
// uResolution in pixels and vUV in [0,1].
const FragmentShader = `#version 410 core
in vec2 vUV;
out vec4 fragColor;

uniform float uTime;
uniform vec2 uResolution;

float hash(vec2 p) {
	return fract(sin(dot(p, vec2(12.9898, 78.233))) * 43758.5453);
}

void main() {
	vec2 uv = vUV;

	vec2 grid = fract(uv * 20.0);
	float gridLine = max(
		smoothstep(0.95, 1.0, grid.x) + smoothstep(0.05, 0.0, grid.x),
		smoothstep(0.95, 1.0, grid.y) + smoothstep(0.05, 0.0, grid.y));

	float speed = 0.2;
	float rows = max(uResolution.y / 14.0, 20.0);
	float cols = max(uResolution.x / 14.0, 20.0);
	vec2 cell = vec2(floor(uv.x * cols), floor(uv.y * rows - uTime * speed * rows));
	float rain = step(0.98, hash(cell));

	float dist = length(uv - 0.5);
	float pulse1 = smoothstep(0.4, 0.5, dist) * smoothstep(0.6, 0.5, dist) * 0.5;
	float front = fract(uTime * 0.1);
	float pulse2 = smoothstep(front, front + 0.1, dist) * smoothstep(front + 0.2, front + 0.1, dist) * 0.3;

	float stream = 0.0;
	for (int i = 0; i < 5; i++) {
		float fi = float(i) / 5.0;
		float a = uTime * (0.1 + fi * 0.1) + fi * 6.28;
		vec2 p = vec2(sin(a), cos(a)) * 0.4 + 0.5;
		stream += smoothstep(0.02, 0.0, length(uv - p));
	}

	vec3 color = vec3(0.0);
	color += vec3(0.2, 0.4, 0.8) * gridLine * 0.3;
	color += vec3(0.3, 0.6, 1.0) * rain;
	color += vec3(0.2, 0.5, 0.9) * pulse1;
	color += vec3(0.1, 0.3, 0.7) * pulse2;
	color += vec3(0.4, 0.7, 1.0) * stream;
	fragColor = vec4(color, 1.0);
}
` + "\x00"
