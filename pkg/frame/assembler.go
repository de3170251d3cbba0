package frame

import "context"

// Assemble reads exactly one frame payload from src.
// Short reads are retried until Size bytes are collected and no byte past
// the frame is ever requested.
func Assemble(ctx context.Context, src Source) (f RawFrame, err error) {
	for n := 0; n < Size; {
		var m int
		m, err = src.ReadContext(ctx, f[n:])
		n += m
		if err != nil {
			if n == Size {
				// the error resurfaces on the next read.
				return f, nil
			}
			return RawFrame{}, err
		}
		if m == 0 {
			if err = ctx.Err(); err != nil {
				return RawFrame{}, err
			}
		}
	}
	return f, nil
}
