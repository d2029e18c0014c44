// Package spinor implements a host-side driver for a memory-mapped SPI NOR
// flash controller: register sequencing, page-boundary chunking, the
// write-enable latch discipline, and busy polling. The controller and the
// flash device it drives are modeled in the sibling sem and fdm packages.
//
// # References:
//
// SPI NOR flash command sets
//   - [N25Q32]: N25Q032A Micron Serial NOR Flash Memory datasheet (could not find the official public URL)
//   - [W25Q128]: W25Q128JV-DTR Winbond Serial Flash Memory (https://www.winbond.com/resource-files/W25Q128JV_DTR%20RevD%2012232024%20Plus.pdf)
package spinor
