package tensor

import (
	"strconv"
	"strings"
)

// String renders the tensor with nested brackets, one level per dimension.
//
//	Scalar(0.5)          -> 0.5
//	Shape{1, 3}, [1 2 3] -> [[1 2 3]]
func (t *Dense) String() string {
	if len(t.shape) == 0 {
		return formatValue(t.data[0])
	}
	var sb strings.Builder
	writeNested(&sb, t.data, t.shape, t.shape.ComputeStrides(), 0, 0)
	return sb.String()
}

func writeNested(sb *strings.Builder, data []float64, shape Shape, strides []int, dim, offset int) {
	sb.WriteByte('[')
	for i := 0; i < shape[dim]; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if dim == len(shape)-1 {
			sb.WriteString(formatValue(data[offset+i]))
			continue
		}
		writeNested(sb, data, shape, strides, dim+1, offset+i*strides[dim])
	}
	sb.WriteByte(']')
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
