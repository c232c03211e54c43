// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"slices"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/guidemo"
)

// DeviceHandle is the interface renderers receive the GPU device through.
// It is an alias so any gpucontext host can drive the renderers.
type DeviceHandle = gpucontext.DeviceProvider

// Device is an adapter and logical device pair plus the negotiated
// surface format. It implements DeviceHandle.
type Device struct {
	adapter *wgpu.Adapter
	device  *wgpu.Device
	queue   *wgpu.Queue
	format  gputypes.TextureFormat
	info    gputypes.AdapterInfo
}

// DeviceOption configures RequestDevice.
type DeviceOption func(*deviceOptions)

type deviceOptions struct {
	power         gputypes.PowerPreference
	forceFallback bool
	label         string
}

// WithForceFallback requests the fallback (software) adapter.
func WithForceFallback(force bool) DeviceOption {
	return func(o *deviceOptions) {
		o.forceFallback = force
	}
}

// WithPowerPreference overrides the default high-performance preference.
func WithPowerPreference(p gputypes.PowerPreference) DeviceOption {
	return func(o *deviceOptions) {
		o.power = p
	}
}

// WithDeviceLabel sets the debug label of the logical device.
func WithDeviceLabel(label string) DeviceOption {
	return func(o *deviceOptions) {
		o.label = label
	}
}

// RequestDevice selects an adapter and opens a device on it.
//
// When surface is non-nil the adapter must be able to present to it, the
// surface format is negotiated from its capabilities, and the surface is
// bound to the new device so Surface.Configure can be called. With a nil
// surface the format is RGBA8Unorm.
func RequestDevice(instance *wgpu.Instance, surface *Surface, opts ...DeviceOption) (*Device, error) {
	o := deviceOptions{
		power: gputypes.PowerPreferenceHighPerformance,
		label: "guidemo",
	}
	for _, opt := range opts {
		opt(&o)
	}

	adapterOpts := &wgpu.RequestAdapterOptions{
		PowerPreference:      o.power,
		ForceFallbackAdapter: o.forceFallback,
	}
	if surface != nil {
		adapterOpts.CompatibleSurface = surface.raw
	}
	adapter, err := instance.RequestAdapter(adapterOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: o.label})
	if err != nil {
		adapter.Release()
		return nil, fmt.Errorf("%w: request device: %w", ErrNoAdapter, err)
	}

	d := &Device{
		adapter: adapter,
		device:  device,
		queue:   device.Queue(),
		format:  gputypes.TextureFormatRGBA8Unorm,
		info:    adapter.Info(),
	}
	if surface != nil {
		d.format = gputypes.TextureFormatBGRA8Unorm
		if caps := adapter.GetSurfaceCapabilities(surface.raw); caps != nil && len(caps.Formats) > 0 {
			d.format = PreferredFormat(caps.Formats)
		}
		surface.bind(d)
	}

	guidemo.Logger().Info("render: adapter selected",
		"name", d.info.Name,
		"type", d.info.DeviceType,
		"format", d.format,
	)
	return d, nil
}

// preferredFormats are tried in order; the GUI painter writes linear
// premultiplied colors, so the plain unorm formats come first.
var preferredFormats = []gputypes.TextureFormat{
	gputypes.TextureFormatRGBA8Unorm,
	gputypes.TextureFormatBGRA8Unorm,
}

// PreferredFormat picks the surface format from the formats a surface
// supports: RGBA8Unorm or BGRA8Unorm when available, else the first one.
// It returns TextureFormatUndefined for an empty list.
func PreferredFormat(formats []gputypes.TextureFormat) gputypes.TextureFormat {
	for _, want := range preferredFormats {
		if slices.Contains(formats, want) {
			return want
		}
	}
	if len(formats) == 0 {
		return gputypes.TextureFormatUndefined
	}
	return formats[0]
}

// Device returns the *wgpu.Device.
func (d *Device) Device() gpucontext.Device { return d.device }

// Queue returns the *wgpu.Queue.
func (d *Device) Queue() gpucontext.Queue { return d.queue }

// Adapter returns the *wgpu.Adapter.
func (d *Device) Adapter() gpucontext.Adapter { return d.adapter }

// SurfaceFormat returns the negotiated color format.
func (d *Device) SurfaceFormat() gputypes.TextureFormat { return d.format }

// AdapterInfo returns the adapter name and class.
func (d *Device) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{
		Name: d.info.Name,
		Type: adapterType(d.info.DeviceType),
	}
}

// Info returns the full wgpu adapter description.
func (d *Device) Info() gputypes.AdapterInfo { return d.info }

// WGPUDevice returns the logical device.
func (d *Device) WGPUDevice() *wgpu.Device { return d.device }

// WaitIdle blocks until the GPU has finished all submitted work.
func (d *Device) WaitIdle() error {
	return d.device.WaitIdle()
}

// Release destroys the device and the adapter.
func (d *Device) Release() {
	if d.device != nil {
		d.device.Release()
		d.device = nil
		d.queue = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
}

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

// WGPU unwraps the wgpu device and queue from a provider.
func WGPU(provider DeviceHandle) (*wgpu.Device, *wgpu.Queue, error) {
	if provider == nil {
		return nil, nil, fmt.Errorf("%w: nil provider", ErrNotWGPU)
	}
	device, ok := provider.Device().(*wgpu.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: device is %T", ErrNotWGPU, provider.Device())
	}
	queue, ok := provider.Queue().(*wgpu.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: queue is %T", ErrNotWGPU, provider.Queue())
	}
	return device, queue, nil
}

// Submit finishes enc and submits it to the device queue.
func (d *Device) Submit(enc *wgpu.CommandEncoder) error {
	cmd, err := enc.Finish()
	if err != nil {
		return fmt.Errorf("render: finish encoder: %w", err)
	}
	if _, err := d.queue.Submit(cmd); err != nil {
		return fmt.Errorf("render: submit: %w", err)
	}
	return nil
}

// NewEncoder creates a command encoder for one frame.
func (d *Device) NewEncoder(label string) (*wgpu.CommandEncoder, error) {
	enc, err := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("render: create encoder: %w", err)
	}
	return enc, nil
}

var _ DeviceHandle = (*Device)(nil)
