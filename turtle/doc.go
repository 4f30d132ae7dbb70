// Package turtle is a small turtle-graphics drawing context.
//
// A Turtle is an explicit cursor (position, heading, pen state) that draws on a
// Screen. The Screen owns the world coordinate system and the redraw batching;
// the pixels themselves live behind a Surface, so the same drawing code runs
// against a window framebuffer, an SVG recording or a test fake.
//
// Headings are in degrees, 0 points east and positive angles turn
// counter-clockwise.
package turtle
