// Package toolutil 提供一些通用的小工具
//
//  1. 统计一组阈值
//     s := StreamOf([]float64{0.5, 0.6, 0.7})
//     mean, _ := Average(s)
//     // 0.6
//
//  2. Map + Reduce 计算偏差平方和
//     sq := Reduce(
//     Map(s, func(x float64) float64 { return (x - mean) * (x - mean) }),
//     0.0,
//     func(acc, x float64) float64 { return acc + x },
//     )
//     // 0.02
//
//  3. 读取配置行并解析整数列表
//     lines, _ := ReadFileToLines("percolate.ini")
//     sizes, _ := ParseIntList("10,20,50")
//     // [10 20 50]
package toolutil
