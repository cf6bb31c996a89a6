// Package kinetics implements the growth-rate response functions for
// microalgal cultures: Beer-Lambert light attenuation, Steele
// photoinhibition, Monod CO2 saturation, the CTMI cardinal temperature
// curve, and their depth-integrated composition.
//
// All functions are pure and side-effect free. Parameter structs are plain
// values owned by the caller; nothing here retains state between calls.
// Non-positive irradiance, CO2, or out-of-window temperatures are physically
// meaningful boundary states and yield a zero response rather than an error;
// range validation of parameters belongs to the config layer.
package kinetics
