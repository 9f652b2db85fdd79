package hxbox

// MapFunc computes the props forwarded to a wrapped component from the props
// a composed component received.
type MapFunc func(received Props) (Props, error)

// Composed is a component bound to a property mapping. It is produced by
// WithProps and WithPropsFunc and can itself be composed further:
//
//	base := hxbox.Default.WithProps(hxbox.NewProps("display", "flex"))
//	column := base.WithProps(hxbox.NewProps("flexDirection", "column"))
//
// Rendering column maps the caller's props through column's mapping, then
// base's, then hands the result to the Box. The element handle is passed
// through every link unchanged.
type Composed struct {
	target   Component
	mapProps MapFunc
}

// WithProps wraps target so that defaults are applied under the props
// received at render time. Received props win key by key; nothing is
// merged deeply.
func WithProps(target Component, defaults Props) *Composed {
	return &Composed{
		target: target,
		mapProps: func(received Props) (Props, error) {
			return defaults.Merge(received), nil
		},
	}
}

// WithPropsFunc wraps target so that fn computes its props on every render.
//
// The value returned by fn is forwarded as is. Received props that fn does
// not copy into its result are dropped:
//
//	toggle := hxbox.Default.WithPropsFunc(func(p hxbox.Props) (hxbox.Props, error) {
//	    bg := "red"
//	    if on, _ := p.Value("on").(bool); on {
//	        bg = "green"
//	    }
//	    return p.Without("on").With("backgroundColor", bg), nil
//	})
//
// An error from fn aborts the render and is returned to the caller as is.
func WithPropsFunc(target Component, fn MapFunc) *Composed {
	return &Composed{target: target, mapProps: fn}
}

// Resolve maps props and resolves the wrapped component with the result.
func (c *Composed) Resolve(props Props, ref Ref) (Element, error) {
	mapped, err := c.mapProps(props)
	if err != nil {
		return Element{}, err
	}
	return c.target.Resolve(mapped, ref)
}

// WithProps returns a component wrapping c with defaults applied.
func (c *Composed) WithProps(defaults Props) *Composed {
	return WithProps(c, defaults)
}

// WithPropsFunc returns a component wrapping c with props computed by fn.
func (c *Composed) WithPropsFunc(fn MapFunc) *Composed {
	return WithPropsFunc(c, fn)
}
